// File: pkg/storage/memory/memory.go
package memory

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"sitedeploy/internal/config"
	"sitedeploy/internal/provider/registry"
	"sitedeploy/pkg/common"
	"sitedeploy/pkg/serrors"
	"sitedeploy/pkg/storage"
)

func init() {
	registry.RegisterProvider(common.Memory, registry.ProviderRegistration{
		Description: "in-process buckets, nothing leaves the machine (dry run)",
		ConfigCheck: func(*config.Config) error { return nil },
		Initializer: func(_ context.Context, _ *config.Config, logger *slog.Logger) (storage.Storage, error) {
			return New(WithLogger(logger)), nil
		},
	})
}

type Op string

const (
	OpVerifyCredentials Op = "VerifyCredentials"
	OpBucketExists      Op = "BucketExists"
	OpCreateBucket      Op = "CreateBucket"
	OpPutObject         Op = "PutObject"
	OpPutBucketWebsite  Op = "PutBucketWebsite"
)

// One recorded backend call, in the order it was made
type Call struct {
	Op     Op
	Bucket string
	Key    string
}

type Object struct {
	Content     []byte
	ContentType string
	PublicRead  bool
}

type Bucket struct {
	Name    string
	Website *storage.WebsiteConfiguration
	Objects map[string]Object
}

type failure struct {
	match func(Call) bool
	err   error
}

// Store keeps buckets in process memory. It doubles as the test backend:
// every call is recorded and failures can be injected per call
type Store struct {
	mu         sync.Mutex
	buckets    map[string]*Bucket
	calls      []Call
	failures   []failure
	noRedirect bool
	logger     *slog.Logger
}

var _ storage.Storage = (*Store)(nil)

type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// Makes every call for which match returns true fail with err
func WithFailure(match func(Call) bool, err error) Option {
	return func(s *Store) { s.failures = append(s.failures, failure{match: match, err: err}) }
}

// Makes VerifyCredentials fail with an authentication error
func WithRejectedCredentials() Option {
	return WithFailure(func(c Call) bool { return c.Op == OpVerifyCredentials },
		serrors.With(serrors.ErrAuthentication, "credentials rejected"))
}

// Makes the store behave like a provider without redirect-all websites
func WithoutWebsiteRedirect() Option {
	return func(s *Store) { s.noRedirect = true }
}

// Pre-creates a bucket holding objects, as if left over from an earlier run
func WithBucket(name string, objects map[string][]byte) Option {
	return func(s *Store) {
		b := &Bucket{Name: name, Objects: make(map[string]Object, len(objects))}
		for key, content := range objects {
			b.Objects[key] = Object{Content: slices.Clone(content), PublicRead: true}
		}
		s.buckets[name] = b
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		buckets: make(map[string]*Bucket),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) ProviderName() common.Provider {
	return common.Memory
}

// Records the call and returns the injected failure for it, if any. Callers hold s.mu
func (s *Store) record(c Call) error {
	s.calls = append(s.calls, c)
	for _, f := range s.failures {
		if f.match(c) {
			return f.err
		}
	}
	return nil
}

func (s *Store) VerifyCredentials(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record(Call{Op: OpVerifyCredentials})
}

func (s *Store) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record(Call{Op: OpBucketExists, Bucket: bucketName}); err != nil {
		return false, err
	}
	_, ok := s.buckets[bucketName]
	return ok, nil
}

func (s *Store) CreateBucket(ctx context.Context, bucketName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record(Call{Op: OpCreateBucket, Bucket: bucketName}); err != nil {
		return err
	}
	if _, ok := s.buckets[bucketName]; !ok {
		s.buckets[bucketName] = &Bucket{Name: bucketName, Objects: make(map[string]Object)}
		s.logger.Debug("Created in-memory bucket", "bucket", bucketName)
	}
	return nil
}

func (s *Store) PutObject(ctx context.Context, bucketName string, object storage.ObjectInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record(Call{Op: OpPutObject, Bucket: bucketName, Key: object.Key}); err != nil {
		return err
	}
	b, ok := s.buckets[bucketName]
	if !ok {
		return serrors.With(serrors.ErrUnavailable, "bucket %s does not exist", bucketName)
	}
	b.Objects[object.Key] = Object{
		Content:     slices.Clone(object.Content),
		ContentType: object.ContentType,
		PublicRead:  true,
	}
	return nil
}

func (s *Store) PutBucketWebsite(ctx context.Context, bucketName string, website storage.WebsiteConfiguration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record(Call{Op: OpPutBucketWebsite, Bucket: bucketName}); err != nil {
		return err
	}
	if s.noRedirect && website.IsRedirect() {
		return serrors.With(serrors.ErrUnsupported, "redirects are disabled for this store")
	}
	b, ok := s.buckets[bucketName]
	if !ok {
		return serrors.With(serrors.ErrUnavailable, "bucket %s does not exist", bucketName)
	}
	applied := website
	if website.RedirectAllRequestsTo != nil {
		redirect := *website.RedirectAllRequestsTo
		applied.RedirectAllRequestsTo = &redirect
	}
	b.Website = &applied
	return nil
}

func (s *Store) SupportsWebsiteRedirect() bool {
	return !s.noRedirect
}

// Buckets outlive Close so a store can be reused across deploys
func (s *Store) Close() error {
	return nil
}

// Returns a copy of the named bucket
func (s *Store) Bucket(name string) (Bucket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.buckets[name]
	if !ok {
		return Bucket{}, false
	}
	out := Bucket{Name: b.Name, Objects: maps.Clone(b.Objects)}
	if b.Website != nil {
		w := *b.Website
		out.Website = &w
	}
	return out, true
}

func (s *Store) BucketNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Sorted(maps.Keys(s.buckets))
}

func (s *Store) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.calls)
}

// Counts recorded calls of op
func (s *Store) CallCount(op Op) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}
