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

type Product struct{ ent.Schema }

func (Product) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "inventory"},
	}
}

func (Product) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).
			Default(uuid.New).
			Immutable().
			StorageKey("id"),
		field.String("name").NotEmpty(),
		field.String("description").Optional(),
		field.String("sku").Optional(),
		field.String("category").NotEmpty(),
		field.Float("price").Min(0).
			SchemaType(map[string]string{dialect.Postgres: "numeric(12,2)"}),
		field.Int("quantity").Min(0),
		field.Enum("status").
			Values("in_stock", "low_quantity", "not_available").
			Default("in_stock"),
		field.Time("created_at").Default(time.Now),
		field.Time("updated_at").Default(time.Now).UpdateDefault(time.Now),
	}
}

func (Product) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("sku"),
		index.Fields("category"),
		index.Fields("status"),
	}
}
