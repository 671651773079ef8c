package state

import (
	"fmt"
	"time"

	"quadplus/api/internal/models"
)

// Documents returns a snapshot of the document register.
func (s *Store) Documents() []models.DocumentItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.DocumentItem(nil), s.documents...)
}

// AddDocument appends to the document register; ids follow the original
// count-plus-one policy.
func (s *Store) AddDocument(name string, actorName string) (models.DocumentItem, error) {
	if name == "" {
		return models.DocumentItem{}, ErrMissingFields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := models.DocumentItem{
		ID:         len(s.documents) + 1,
		Name:       name,
		UploadedBy: actorName,
	}
	s.documents = append(append([]models.DocumentItem(nil), s.documents...), doc)
	s.record(fmt.Sprintf("Document %q uploaded by %s.", doc.Name, actorName))
	return doc, nil
}

func (s *Store) RenameDocument(id int, name string, actorName string) (models.DocumentItem, error) {
	if name == "" {
		return models.DocumentItem{}, ErrMissingFields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append([]models.DocumentItem(nil), s.documents...)
	for i := range next {
		if next[i].ID != id {
			continue
		}
		next[i].Name = name
		s.documents = next
		s.record(fmt.Sprintf("Document %q renamed by %s.", name, actorName))
		return next[i], nil
	}
	return models.DocumentItem{}, ErrDocumentNotFound
}

func (s *Store) DeleteDocument(id int, actorName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.DocumentItem, 0, len(s.documents))
	found := false
	var name string
	for _, doc := range s.documents {
		if doc.ID == id {
			found = true
			name = doc.Name
			continue
		}
		next = append(next, doc)
	}
	if !found {
		return ErrDocumentNotFound
	}
	s.documents = next
	s.record(fmt.Sprintf("Document %q deleted by %s.", name, actorName))
	return nil
}

// Meetings returns a snapshot of the meeting register.
func (s *Store) Meetings() []models.Meeting {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Meeting, len(s.meetings))
	for i, m := range s.meetings {
		out[i] = m
		out[i].AssignedTo = append([]string(nil), m.AssignedTo...)
	}
	return out
}

// AddMeeting schedules a meeting; ids are wall-clock derived like the source.
// Title, date, and at least one assignee are required.
func (s *Store) AddMeeting(title string, date string, assignedTo []string) (models.Meeting, error) {
	if title == "" || date == "" || len(assignedTo) == 0 {
		return models.Meeting{}, ErrMissingFields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	meeting := models.Meeting{
		ID:         time.Now().UnixMilli(),
		Title:      title,
		AssignedTo: append([]string(nil), assignedTo...),
		Date:       date,
	}
	s.meetings = append(append([]models.Meeting(nil), s.meetings...), meeting)
	s.record(fmt.Sprintf("Meeting %q scheduled.", meeting.Title))
	return meeting, nil
}

// MeetingPatch carries the fields a partial update may change.
type MeetingPatch struct {
	Title      *string
	Date       *string
	AssignedTo *[]string
}

func (s *Store) UpdateMeeting(id int64, patch MeetingPatch) (models.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append([]models.Meeting(nil), s.meetings...)
	for i := range next {
		if next[i].ID != id {
			continue
		}
		if patch.Title != nil {
			next[i].Title = *patch.Title
		}
		if patch.Date != nil {
			next[i].Date = *patch.Date
		}
		if patch.AssignedTo != nil {
			next[i].AssignedTo = append([]string(nil), (*patch.AssignedTo)...)
		}
		s.meetings = next
		s.record("Meeting updated.")
		return next[i], nil
	}
	return models.Meeting{}, ErrMeetingNotFound
}

func (s *Store) RemoveMeeting(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Meeting, 0, len(s.meetings))
	found := false
	for _, m := range s.meetings {
		if m.ID == id {
			found = true
			continue
		}
		next = append(next, m)
	}
	if !found {
		return ErrMeetingNotFound
	}
	s.meetings = next
	s.record("Meeting removed.")
	return nil
}

// Messages returns a snapshot of the message register.
func (s *Store) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Message(nil), s.messages...)
}

// SendMessage appends a message. An empty recipient or body is silently
// ignored: no record is created and no notification recorded.
func (s *Store) SendMessage(from, to, content string) (models.Message, bool) {
	if to == "" || content == "" {
		return models.Message{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := models.Message{
		ID:      time.Now().UnixMilli(),
		From:    from,
		To:      to,
		Content: content,
		Date:    time.Now().UTC(),
	}
	s.messages = append(append([]models.Message(nil), s.messages...), msg)
	s.record(fmt.Sprintf("Message sent by %s to %s.", from, to))
	return msg, true
}

// Settings returns the current settings document.
func (s *Store) Settings() models.SettingsData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *Store) UpdateSettings(settings models.SettingsData) models.SettingsData {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	return s.settings
}
