package pkguid

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"sync"
	"time"
)

// Bit layout of a generated ID, most significant first:
// 44 bits of milliseconds since the Unix epoch, 11 bits of instance,
// 8 bits of intra-millisecond counter.
const (
	counterBits  = 8
	instanceBits = 11
	timeShift    = instanceBits + counterBits

	maxCounter = 1<<counterBits - 1
	maxTime    = 1<<(63-timeShift) - 1

	// MaxInstance is the exclusive upper bound for instance numbers.
	// The value 2047 itself is rejected even though the field can hold it,
	// matching the bound every previously issued ID was minted under.
	MaxInstance = 1<<instanceBits - 1

	// maxRegression is how far the clock may run backwards, in
	// milliseconds, before a call fails instead of waiting the skew out.
	maxRegression = 10
)

var (
	// ErrInvalidInstance reports an instance number outside [0, MaxInstance).
	ErrInvalidInstance = errors.New("instance must be in [0, 2047)")
	// ErrNilClock reports a missing clock at construction.
	ErrNilClock = errors.New("clock is required")
	// ErrClockOverflow reports that the clock no longer fits the 44-bit
	// time field. Not retryable.
	ErrClockOverflow = errors.New("clock beyond time field capacity")
	// ErrClockRegression reports a backward clock jump of 10ms or more.
	// The call is not retried internally.
	ErrClockRegression = errors.New("clock moved backwards")
)

// Clock reports the current time in milliseconds since the Unix epoch.
type Clock func() int64

// SystemClock is the production Clock.
func SystemClock() int64 {
	return time.Now().UnixMilli()
}

// Snowflake mints time-ordered 64-bit IDs unique across processes that
// hold distinct instance numbers. One instance sustains at most 256 IDs
// per millisecond; past that ceiling, NextID waits for the next tick.
//
// Assigning a globally-unique instance number to each process is the
// caller's problem; the generator only trusts the one it was given.
type Snowflake struct {
	clock    Clock
	instance uint16

	mu       sync.Mutex
	lastTime int64
	counter  uint32
	starter  uint32
}

// NewSnowflake constructs a generator for the given instance number.
func NewSnowflake(instance uint16, clock Clock) (*Snowflake, error) {
	if instance >= MaxInstance {
		return nil, ErrInvalidInstance
	}
	if clock == nil {
		return nil, ErrNilClock
	}

	seed, err := randomCounter()
	if err != nil {
		return nil, err
	}

	return &Snowflake{
		clock:    clock,
		instance: instance,
		lastTime: clock(),
		counter:  seed,
		starter:  seed,
	}, nil
}

// NextID returns a fresh identifier.
//
// Small clock regressions (under 10ms) and counter exhaustion within one
// millisecond are absorbed by spinning on the clock; both resolve within
// milliseconds and only cost latency. Larger regressions and time-field
// overflow surface as errors since waiting cannot fix either.
func (s *Snowflake) NextID() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	if now >= maxTime {
		return 0, ErrClockOverflow
	}

	switch {
	case now == s.lastTime:
		s.counter = (s.counter + 1) & maxCounter
		if s.counter == s.starter {
			// Full 256-value cycle used up within this millisecond.
			for now == s.lastTime {
				now = s.clock()
			}
		}
	case now < s.lastTime:
		if s.lastTime-now >= maxRegression {
			return 0, ErrClockRegression
		}
		for now <= s.lastTime {
			now = s.clock()
		}
	}

	if now != s.lastTime {
		seed, err := randomCounter()
		if err != nil {
			return 0, err
		}
		s.counter = seed
		s.starter = seed
		s.lastTime = now
	}

	return uint64(s.lastTime)<<timeShift |
		uint64(s.instance)<<counterBits |
		uint64(s.counter), nil
}

// Instance returns the instance number this generator was built with.
func (s *Snowflake) Instance() uint16 {
	return s.instance
}

// IDParts are the decoded fields of a generated ID.
type IDParts struct {
	Timestamp int64  // milliseconds since the Unix epoch
	Instance  uint16 // generator instance number
	Counter   uint8  // intra-millisecond sequence value
}

// Time returns the timestamp field as a UTC time.
func (p IDParts) Time() time.Time {
	return time.UnixMilli(p.Timestamp).UTC()
}

// Decompose splits an ID back into its fields.
func Decompose(id uint64) IDParts {
	return IDParts{
		Timestamp: int64(id >> timeShift),
		Instance:  uint16(id >> counterBits & MaxInstance),
		Counter:   uint8(id & maxCounter),
	}
}

// Counter reseeds start from a random value rather than zero so IDs
// reduced modulo a partition count stay evenly distributed.
func randomCounter() (uint32, error) {
	var seed uint32
	if err := binary.Read(rand.Reader, binary.BigEndian, &seed); err != nil {
		return 0, err
	}
	return seed & maxCounter, nil
}
