package token

import (
	"crypto/rand"
	"sync"
)

// KeyProvider supplies the active bearer-token signing secret. Rotation is
// driven by an explicit scheduled task rather than a timer, so verification
// can be tested deterministically. Tokens signed under a superseded
// generation become unverifiable; that is the intended short blast radius
// for a compromised key, not an error.
type KeyProvider interface {
	Active() (secret []byte, generation uint64)
	Rotate() uint64
}

var _ KeyProvider = (*RotatingKey)(nil)

// RotatingKey holds a random signing secret plus a generation counter. The
// secret is process-local: every instance that must verify the same tokens
// has to share one provider, so multi-instance deployments need a KeyProvider
// backed by shared storage instead.
type RotatingKey struct {
	mu         sync.RWMutex
	size       int
	secret     []byte
	generation uint64
}

func NewRotatingKey(size int) *RotatingKey {
	if size <= 0 {
		size = 32
	}
	return &RotatingKey{size: size, secret: randomBytes(size)}
}

func (k *RotatingKey) Active() ([]byte, uint64) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.secret, k.generation
}

func (k *RotatingKey) Rotate() uint64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.secret = randomBytes(k.size)
	k.generation++
	return k.generation
}

func randomBytes(n int) []byte {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return buf
}
