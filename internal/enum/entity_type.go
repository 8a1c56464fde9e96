package enum

type EntityType string

const (
	GENERATED_REPLY EntityType = "GENERATED_REPLY"
)

func (entityType EntityType) String() string {
	return string(entityType)
}
