package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// UserProfile stores per-user identity fields and the last generated
// recommendation report. One row per user, keyed by user_id.
type UserProfile struct {
	ent.Schema
}

func (UserProfile) Fields() []ent.Field {
	return []ent.Field{
		field.String("user_id").
			Unique().
			Immutable().
			Comment("Stable user identity key"),
		field.String("email").
			Default(""),
		field.String("name").
			Default(""),
		field.String("grade").
			Default("").
			Comment("10th or 12th; empty until the user sets it"),
		field.String("stream").
			Default("").
			Comment("12th-grade stream, e.g. Science (PCM); empty otherwise"),
		field.JSON("recommendation", map[string]any{}).
			Optional().
			Comment("Last recommendation report; cleared on quiz restart"),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

func (UserProfile) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id"),
	}
}
