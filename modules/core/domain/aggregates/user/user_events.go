package user

type CreatedEvent struct {
	Result User
}

func NewCreatedEvent(result User) *CreatedEvent {
	return &CreatedEvent{Result: result}
}
