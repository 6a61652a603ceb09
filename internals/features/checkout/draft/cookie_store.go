package draft

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

type draftClaims struct {
	Draft Draft `json:"draft"`
	jwt.RegisteredClaims
}

// Sealer menandatangani draft (HS256) supaya isi cookie tidak bisa diubah client.
type Sealer struct {
	secret []byte
	now    func() time.Time
}

func NewSealer(secret string) *Sealer {
	return &Sealer{secret: []byte(secret), now: time.Now}
}

func (s *Sealer) Seal(d Draft) (string, error) {
	claims := draftClaims{
		Draft: d,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  "pending-registration",
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Sealer) Open(token string) (Draft, error) {
	claims := &draftClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return Draft{}, fmt.Errorf("%w: %v", ErrCorruptDraft, err)
	}
	return claims.Draft, nil
}

/* ===================== CookieStore ===================== */

// CookieStore = Store di atas cookie sesi (tanpa Expires → hilang saat browser ditutup).
// Dibuat per request.
type CookieStore struct {
	c      *fiber.Ctx
	sealer *Sealer
	name   string
	secure bool

	// nilai yang sudah ditulis di request ini (cookie request belum berubah)
	pending *Draft
	cleared bool
}

func NewCookieStore(c *fiber.Ctx, sealer *Sealer, name string, secure bool) *CookieStore {
	return &CookieStore{c: c, sealer: sealer, name: name, secure: secure}
}

func (s *CookieStore) Save(d Draft) error {
	token, err := s.sealer.Seal(d)
	if err != nil {
		return fmt.Errorf("seal draft: %w", err)
	}
	s.c.Cookie(&fiber.Cookie{
		Name:     s.name,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   s.secure,
		// Lax: tetap terkirim saat browser kembali dari gateway (top-level GET)
		SameSite:    fiber.CookieSameSiteLaxMode,
		SessionOnly: true,
	})
	cp := d
	s.pending = &cp
	s.cleared = false
	return nil
}

func (s *CookieStore) Load() (Draft, bool, error) {
	if s.cleared {
		return Draft{}, false, nil
	}
	if s.pending != nil {
		return *s.pending, true, nil
	}
	raw := s.c.Cookies(s.name)
	if raw == "" {
		return Draft{}, false, nil
	}
	d, err := s.sealer.Open(raw)
	if err != nil {
		// cookie rusak / dimanipulasi → anggap tidak ada, sekalian dibuang
		log.Printf("[WARN] discarding unreadable draft cookie: %v", err)
		_ = s.Clear()
		return Draft{}, false, nil
	}
	return d, true, nil
}

func (s *CookieStore) Clear() error {
	s.c.Cookie(&fiber.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Unix(0, 0),
	})
	s.pending = nil
	s.cleared = true
	return nil
}
