package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"

	"github.com/google/uuid"
)

type ErrorLog struct{ ent.Schema }

func (ErrorLog) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "errors"},
	}
}

func (ErrorLog) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).
			Default(uuid.New).
			Immutable().
			StorageKey("id"),
		field.String("title").NotEmpty(),
		field.String("description").NotEmpty(),
		field.Enum("severity").
			Values("low", "medium", "high", "critical"),
		field.Enum("status").
			Values("active", "investigating", "monitoring", "resolved").
			Default("active"),
		field.Enum("category").
			Values("database", "payment", "storage", "api", "email", "server", "network", "auth"),
		field.Int("frequency").Default(1).Min(1),
		field.Time("created_at").Default(time.Now),
		field.Time("updated_at").Default(time.Now).UpdateDefault(time.Now),
	}
}

func (ErrorLog) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("severity"),
		index.Fields("status"),
	}
}
