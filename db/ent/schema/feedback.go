package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"

	"github.com/google/uuid"
)

type Feedback struct{ ent.Schema }

func (Feedback) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "feedback"},
	}
}

func (Feedback) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).
			Default(uuid.New).
			Immutable().
			StorageKey("id"),
		field.Int("rating").Min(1).Max(5),
		field.String("comment").NotEmpty(),
		field.Enum("status").
			Values("pending", "in_review", "resolved").
			Default("pending"),
		field.Enum("category").
			Values("product", "service", "shipping", "support", "general").
			Default("general"),
		field.Time("created_at").Default(time.Now),
		field.Time("updated_at").Default(time.Now).UpdateDefault(time.Now),
	}
}
