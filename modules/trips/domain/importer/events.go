package importer

func NewSessionCreatedEvent(s *Session) *SessionCreatedEvent {
	return &SessionCreatedEvent{Session: s}
}

type SessionCreatedEvent struct {
	Session *Session
}

func NewSessionRetriedEvent(s *Session) *SessionRetriedEvent {
	return &SessionRetriedEvent{Session: s}
}

type SessionRetriedEvent struct {
	Session *Session
}
