package tariff

type CreatedEvent struct {
	Result Tariff
}

type UpdatedEvent struct {
	Result Tariff
}

func NewCreatedEvent(result Tariff) *CreatedEvent {
	return &CreatedEvent{Result: result}
}

func NewUpdatedEvent(result Tariff) *UpdatedEvent {
	return &UpdatedEvent{Result: result}
}
