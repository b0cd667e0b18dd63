package registry

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	xdr "github.com/nullstyle/go-xdr/xdr3"
	"go.uber.org/zap"

	"github.com/farmpool/poold/db"
	"github.com/farmpool/poold/logging"
	"github.com/farmpool/poold/types"
)

var (
	farmerPrefix  = []byte("farmer/")
	partialPrefix = []byte("partial/")
)

// DefaultPartialRetention is how long confirmed partials are kept.
const DefaultPartialRetention = 48 * time.Hour

// record is the persisted form of a FarmerRecord.
type record struct {
	P2SingletonPuzzleHash   [32]byte
	DelayTime               uint64
	DelayPuzzleHash         [32]byte
	AuthenticationPublicKey [48]byte
	// Streamable encodings, empty when unknown.
	SingletonTip       []byte
	SingletonTipState  []byte
	Points             uint64
	Difficulty         uint64
	PayoutInstructions string
	IsPoolMember       bool
}

func encodeRecord(r *types.FarmerRecord) ([]byte, error) {
	rec := record{
		P2SingletonPuzzleHash:   r.P2SingletonPuzzleHash,
		DelayTime:               r.DelayTime,
		DelayPuzzleHash:         r.DelayPuzzleHash,
		AuthenticationPublicKey: r.AuthenticationPublicKey,
		Points:                  r.Points,
		Difficulty:              r.Difficulty,
		PayoutInstructions:      r.PayoutInstructions,
		IsPoolMember:            r.IsPoolMember,
	}
	if r.SingletonTip != nil {
		rec.SingletonTip = r.SingletonTip.Bytes()
	}
	if r.SingletonTipState != nil {
		rec.SingletonTipState = r.SingletonTipState.Bytes()
	}
	var buf bytes.Buffer
	if _, err := xdr.Marshal(&buf, rec); err != nil {
		return nil, fmt.Errorf("serialization failure: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeRecord(launcherID types.Bytes32, data []byte) (*types.FarmerRecord, error) {
	var rec record
	if _, err := xdr.Unmarshal(bytes.NewReader(data), &rec); err != nil {
		return nil, fmt.Errorf("failed to deserialize: %w", err)
	}
	r := &types.FarmerRecord{
		LauncherID:              launcherID,
		P2SingletonPuzzleHash:   rec.P2SingletonPuzzleHash,
		DelayTime:               rec.DelayTime,
		DelayPuzzleHash:         rec.DelayPuzzleHash,
		AuthenticationPublicKey: rec.AuthenticationPublicKey,
		Points:                  rec.Points,
		Difficulty:              rec.Difficulty,
		PayoutInstructions:      rec.PayoutInstructions,
		IsPoolMember:            rec.IsPoolMember,
	}
	var err error
	if len(rec.SingletonTip) > 0 {
		if r.SingletonTip, err = types.ParseCoinSpend(rec.SingletonTip); err != nil {
			return nil, fmt.Errorf("singleton tip: %w", err)
		}
	}
	if len(rec.SingletonTipState) > 0 {
		if r.SingletonTipState, err = types.ParsePoolState(rec.SingletonTipState); err != nil {
			return nil, fmt.Errorf("singleton tip state: %w", err)
		}
	}
	return r, nil
}

func farmerKey(id types.Bytes32) []byte {
	return append(append([]byte(nil), farmerPrefix...), id[:]...)
}

func partialsKey(id types.Bytes32) []byte {
	return append(append([]byte(nil), partialPrefix...), id[:]...)
}

func partialKey(id types.Bytes32, ts time.Time, seq uint64) []byte {
	key := partialsKey(id)
	key = binary.BigEndian.AppendUint64(key, uint64(ts.UnixNano()))
	return binary.BigEndian.AppendUint64(key, seq)
}

func parsePartial(key, value []byte) (types.Partial, error) {
	if len(key) < 16 || len(value) != 8 {
		return types.Partial{}, fmt.Errorf("malformed partial entry %X", key)
	}
	ts := binary.BigEndian.Uint64(key[len(key)-16:])
	return types.Partial{
		Timestamp:  time.Unix(0, int64(ts)),
		Difficulty: binary.BigEndian.Uint64(value),
	}, nil
}

type StoreOption func(*Store)

// WithPartialRetention sets how long confirmed partials are kept for difficulty adjustment.
func WithPartialRetention(d time.Duration) StoreOption {
	return func(s *Store) {
		s.retention = d
	}
}

// Store is the Registry backed by a db.KV.
type Store struct {
	*Locker
	kv        db.KV
	retention time.Duration

	// serializes the store's own read-modify-write calls
	mu  sync.Mutex
	seq atomic.Uint64
}

func NewStore(kv db.KV, opts ...StoreOption) *Store {
	s := &Store{
		Locker:    NewLocker(),
		kv:        kv,
		retention: DefaultPartialRetention,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Close() error {
	return s.kv.Close()
}

func (s *Store) Get(ctx context.Context, launcherID types.Bytes32) (*types.FarmerRecord, error) {
	data, err := s.kv.Get(farmerKey(launcherID))
	switch {
	case errors.Is(err, db.ErrNotFound):
		return nil, fmt.Errorf("%w: %s", ErrNotFound, launcherID)
	case err != nil:
		return nil, fmt.Errorf("get farmer %s from DB: %w", launcherID, err)
	}
	return decodeRecord(launcherID, data)
}

func (s *Store) put(r *types.FarmerRecord) error {
	data, err := encodeRecord(r)
	if err != nil {
		return err
	}
	if err := s.kv.Write(func(b db.Batch) { b.Put(farmerKey(r.LauncherID), data) }); err != nil {
		return fmt.Errorf("storing farmer %s in DB: %w", r.LauncherID, err)
	}
	return nil
}

func (s *Store) Create(ctx context.Context, r *types.FarmerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	has, err := s.kv.Has(farmerKey(r.LauncherID))
	if err != nil {
		return fmt.Errorf("querying farmer %s: %w", r.LauncherID, err)
	}
	if has {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, r.LauncherID)
	}
	return s.put(r)
}

func (s *Store) modify(ctx context.Context, launcherID types.Bytes32, fn func(r *types.FarmerRecord)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.Get(ctx, launcherID)
	if err != nil {
		return err
	}
	fn(r)
	return s.put(r)
}

func (s *Store) Update(ctx context.Context, update *types.FarmerRecord) error {
	return s.modify(ctx, update.LauncherID, func(r *types.FarmerRecord) {
		r.AuthenticationPublicKey = update.AuthenticationPublicKey
		r.PayoutInstructions = update.PayoutInstructions
		r.Difficulty = update.Difficulty
	})
}

func (s *Store) UpdateDifficulty(ctx context.Context, launcherID types.Bytes32, difficulty uint64) error {
	return s.modify(ctx, launcherID, func(r *types.FarmerRecord) {
		r.Difficulty = difficulty
	})
}

func (s *Store) UpdateSingletonState(
	ctx context.Context,
	launcherID types.Bytes32,
	tip *types.CoinSpend,
	state *types.PoolState,
	isMember bool,
) error {
	return s.modify(ctx, launcherID, func(r *types.FarmerRecord) {
		r.SingletonTip = tip
		r.SingletonTipState = state
		r.IsPoolMember = isMember
	})
}

func (s *Store) AddPartial(ctx context.Context, launcherID types.Bytes32, timestamp time.Time, difficulty uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.Get(ctx, launcherID)
	if err != nil {
		return err
	}
	r.Points += difficulty
	data, err := encodeRecord(r)
	if err != nil {
		return err
	}

	cutoff := uint64(timestamp.Add(-s.retention).UnixNano())
	var expired [][]byte
	prefix := partialsKey(launcherID)
	err = s.kv.Iterate(prefix, false, func(key, _ []byte) bool {
		if len(key) < len(prefix)+8 || binary.BigEndian.Uint64(key[len(prefix):]) >= cutoff {
			return false
		}
		expired = append(expired, append([]byte(nil), key...))
		return true
	})
	if err != nil {
		return fmt.Errorf("listing partials of %s: %w", launcherID, err)
	}

	value := binary.BigEndian.AppendUint64(nil, difficulty)
	err = s.kv.Write(func(b db.Batch) {
		b.Put(partialKey(launcherID, timestamp, s.seq.Add(1)), value)
		b.Put(farmerKey(launcherID), data)
		for _, key := range expired {
			b.Delete(key)
		}
	})
	if err != nil {
		return fmt.Errorf("storing partial of %s: %w", launcherID, err)
	}
	if len(expired) > 0 {
		logging.FromContext(ctx).Debug("pruned partials", zap.Stringer("launcher_id", launcherID), zap.Int("count", len(expired)))
	}
	return nil
}

func (s *Store) RecentPartials(ctx context.Context, launcherID types.Bytes32, count int) ([]types.Partial, error) {
	var (
		partials []types.Partial
		parseErr error
	)
	if count <= 0 {
		return nil, nil
	}
	err := s.kv.Iterate(partialsKey(launcherID), true, func(key, value []byte) bool {
		var p types.Partial
		if p, parseErr = parsePartial(key, value); parseErr != nil {
			return false
		}
		partials = append(partials, p)
		return len(partials) < count
	})
	if err == nil {
		err = parseErr
	}
	if err != nil {
		return nil, fmt.Errorf("listing partials of %s: %w", launcherID, err)
	}
	return partials, nil
}
