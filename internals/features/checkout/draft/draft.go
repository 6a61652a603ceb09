// Package draft menyimpan data form registrasi yang belum dibayar, supaya
// tetap ada setelah browser pindah ke halaman pembayaran lalu kembali.
package draft

import (
	"errors"

	"eventreg_backend/internals/features/registrations/dto"
)

// Draft = nilai form registrasi yang belum terkonfirmasi.
type Draft = dto.UserData

var ErrCorruptDraft = errors.New("draft: stored value is unreadable")

// Store = satu slot draft per sesi browser. Save menimpa nilai lama.
type Store interface {
	Save(d Draft) error
	// Load mengembalikan found=false kalau slot kosong.
	Load() (d Draft, found bool, err error)
	Clear() error
}

/* ===================== MemoryStore ===================== */

type MemoryStore struct {
	value *Draft
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Save(d Draft) error {
	cp := d
	s.value = &cp
	return nil
}

func (s *MemoryStore) Load() (Draft, bool, error) {
	if s.value == nil {
		return Draft{}, false, nil
	}
	return *s.value, true, nil
}

func (s *MemoryStore) Clear() error {
	s.value = nil
	return nil
}
