package tests

import (
	"encoding/json"
	"errors"

	"github.com/Ithalolp/JW-STORE/pkg/domain/model"
	"github.com/Ithalolp/JW-STORE/pkg/domain/service"
)

var _ service.SnapshotStore = &mockSnapshotStore{}

// mockSnapshotStore keeps each snapshot as marshaled JSON so tests can
// compare persisted state byte for byte.
type mockSnapshotStore struct {
	snapshots  map[string]string
	failReads  bool
	failWrites bool
}

func newMockSnapshotStore() *mockSnapshotStore {
	return &mockSnapshotStore{snapshots: make(map[string]string)}
}

func (m *mockSnapshotStore) Load(key string, out any) (bool, error) {
	if m.failReads {
		return false, errors.New("storage read failed")
	}
	document, ok := m.snapshots[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal([]byte(document), out)
}

func (m *mockSnapshotStore) Save(key string, v any) error {
	if m.failWrites {
		return errors.New("storage write failed")
	}
	document, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.snapshots[key] = string(document)
	return nil
}

func (m *mockSnapshotStore) Delete(key string) error {
	if m.failWrites {
		return errors.New("storage delete failed")
	}
	delete(m.snapshots, key)
	return nil
}

func (m *mockSnapshotStore) copySnapshots() map[string]string {
	copied := make(map[string]string, len(m.snapshots))
	for key, document := range m.snapshots {
		copied[key] = document
	}
	return copied
}

type mockEventDispatcher struct {
	events []service.Event
}

func (m *mockEventDispatcher) Dispatch(event service.Event) error {
	m.events = append(m.events, event)
	return nil
}

func (m *mockEventDispatcher) Reset() {
	m.events = nil
}

// sequentialIDGenerator keeps line item ids predictable in tests.
type sequentialIDGenerator struct {
	next int64
}

func (g *sequentialIDGenerator) NextID() int64 {
	g.next++
	return g.next
}

type recordingOpener struct {
	urls []string
	err  error
}

func (o *recordingOpener) Open(target string) error {
	o.urls = append(o.urls, target)
	return o.err
}

type recordingPrompt struct {
	items []model.CartLineItem
}

func (p *recordingPrompt) PromptProfile(item model.CartLineItem) {
	p.items = append(p.items, item)
}
