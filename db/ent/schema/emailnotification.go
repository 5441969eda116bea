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

type EmailNotification struct{ ent.Schema }

func (EmailNotification) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "email_notifications"},
	}
}

func (EmailNotification) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).
			Default(uuid.New).
			Immutable().
			StorageKey("id"),
		field.UUID("user_id", uuid.UUID{}),
		field.String("email_id").NotEmpty().Unique(),
		field.String("subject").NotEmpty(),
		field.String("sender").NotEmpty(),
		field.Time("received_at"),
		field.Bool("is_read").Default(false),
		field.Bool("is_processed").Default(false),
		field.JSON("order_extracted", map[string]any{}).
			Optional().
			SchemaType(map[string]string{dialect.Postgres: "jsonb"}),
		field.Text("raw_email_content").Optional(),
		field.Enum("processing_status").
			Values("pending", "processing", "completed", "failed").
			Default("pending"),
		field.String("processing_error").Optional(),
		field.Time("created_at").Default(time.Now),
		field.Time("updated_at").Default(time.Now).UpdateDefault(time.Now),
	}
}

func (EmailNotification) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "received_at"),
		index.Fields("user_id", "is_read"),
	}
}
