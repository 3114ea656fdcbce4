package asset

type CreatedEvent struct {
	Result Asset
}

func NewCreatedEvent(result Asset) *CreatedEvent {
	return &CreatedEvent{Result: result}
}
