package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"

	"github.com/google/uuid"
)

type Order struct{ ent.Schema }

func (Order) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "orders"},
	}
}

func (Order) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).
			Default(uuid.New).
			Immutable().
			StorageKey("id"),
		field.String("date").NotEmpty(), // YYYY-MM-DD
		field.String("time").NotEmpty(),
		field.JSON("products", []map[string]any{}).
			SchemaType(map[string]string{dialect.Postgres: "jsonb"}),
		field.String("status").NotEmpty(),
		field.String("order_link").NotEmpty(),
		field.String("email").NotEmpty(),
		field.String("name").NotEmpty(),
		field.Bool("ai_processed").Default(false),
		field.Float("ai_confidence").Default(0).Min(0).Max(100),
		field.JSON("original_email", map[string]any{}).
			Optional().
			SchemaType(map[string]string{dialect.Postgres: "jsonb"}),
		field.Bool("requires_review").Default(false),
		field.Float("total_amount").
			Optional().Nillable().
			SchemaType(map[string]string{dialect.Postgres: "numeric(12,2)"}),
		field.JSON("shipping_address", map[string]any{}).
			Optional().
			SchemaType(map[string]string{dialect.Postgres: "jsonb"}),
		field.Time("created_at").Default(time.Now),
		field.Time("updated_at").Default(time.Now).UpdateDefault(time.Now),
	}
}

func (Order) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("order_link"),
		index.Fields("email"),
		index.Fields("date"),
		index.Fields("ai_processed"),
		index.Fields("requires_review"),
		index.Fields("status"),
	}
}
