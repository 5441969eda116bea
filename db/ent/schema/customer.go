package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"

	"github.com/google/uuid"
)

type Customer struct{ ent.Schema }

func (Customer) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "customers"},
	}
}

func (Customer) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).
			Default(uuid.New).
			Immutable().
			StorageKey("id"),
		field.String("name").NotEmpty(),
		field.String("email").NotEmpty(),
		field.String("phone").Optional(),
		field.Int("orders").Default(0).Min(0),
		field.Float("total_spent").Default(0).Min(0).
			SchemaType(map[string]string{dialect.Postgres: "numeric(12,2)"}),
		field.String("last_order").Optional(), // YYYY-MM-DD
		field.String("status").Default("active"),
		field.String("location").Optional(),
		field.String("join_date").Optional(), // YYYY-MM-DD
		field.Time("created_at").Default(time.Now),
		field.Time("updated_at").Default(time.Now).UpdateDefault(time.Now),
	}
}
