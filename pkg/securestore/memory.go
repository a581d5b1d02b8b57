package securestore

import (
	"context"
	"sync"
)

// Op names a Store operation, used to inject failures into Memory.
type Op string

const (
	OpGet    Op = "get"
	OpSet    Op = "set"
	OpDelete Op = "delete"
)

// Memory is a Store that lives only as long as the process. It does not
// encrypt; nothing it holds ever reaches disk.
type Memory struct {
	mu     sync.Mutex
	token  string
	ok     bool
	failOn map[Op]error
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{failOn: make(map[Op]error)}
}

// FailOn makes every future op return err wrapped as a storage failure.
// A nil err clears the failure.
func (m *Memory) FailOn(op Op, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failOn, op)
		return
	}
	m.failOn[op] = err
}

func (m *Memory) Get(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, Wrap(string(OpGet), err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failOn[OpGet]; err != nil {
		return "", false, Wrap(string(OpGet), err)
	}
	return m.token, m.ok, nil
}

func (m *Memory) Set(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return Wrap(string(OpSet), err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failOn[OpSet]; err != nil {
		return Wrap(string(OpSet), err)
	}
	m.token, m.ok = token, true
	return nil
}

func (m *Memory) Delete(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failOn[OpDelete]; err != nil {
		return Wrap(string(OpDelete), err)
	}
	m.token, m.ok = "", false
	return nil
}

func (m *Memory) Close() error { return nil }
