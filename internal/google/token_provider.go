package google

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/teemow/calendarctl/internal/logging"
)

// Token refresh outcomes reported to RefreshRecorder.
const (
	RefreshResultSuccess = "success"
	RefreshResultFailure = "failure"
	RefreshResultExpired = "expired"
)

// TokenProvider loads an authorized credential for a single invocation.
// This abstraction allows the runner to be exercised without touching disk.
type TokenProvider interface {
	// Load returns a usable credential for the file at path.
	Load(ctx context.Context, path string, scopes []string) (*Credential, error)
}

// RefreshRecorder receives token refresh outcomes.
type RefreshRecorder interface {
	RecordOAuthTokenRefresh(ctx context.Context, result string)
}

// StoreConfig holds the collaborators of a Store.
type StoreConfig struct {
	// HTTPClient is used for the token endpoint (default: http.DefaultClient).
	HTTPClient *http.Client

	// Logger receives debug output (default: slog.Default()).
	Logger *slog.Logger

	// Metrics records refresh outcomes; may be nil.
	Metrics RefreshRecorder

	// Now overrides the clock (default: time.Now).
	Now func() time.Time
}

// Store is the file-backed credential store. It loads a credential, refreshes
// it when expired and rewrites the same file with the refreshed form.
type Store struct {
	httpClient *http.Client
	logger     *slog.Logger
	metrics    RefreshRecorder
	now        func() time.Time
}

// NewStore creates a new file-backed credential store
func NewStore(cfg StoreConfig) *Store {
	s := &Store{
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		now:        cfg.Now,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Load reads the credential at path. A valid credential is returned as-is and
// the file is left untouched. An expired credential with a refresh token is
// refreshed exactly once and the file is overwritten with the result. An
// expired credential without a refresh token fails with ErrRefreshUnavailable
// and no network call is made.
//
// scopes are recorded on the credential but not verified against the grant.
func (s *Store) Load(ctx context.Context, path string, scopes []string) (*Credential, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return nil, &CredentialError{Path: path, Err: err}
	}

	info, err := os.Stat(resolved)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &CredentialError{Path: resolved, Err: ErrCredentialFileMissing}
	}
	if err != nil {
		return nil, &CredentialError{Path: resolved, Err: err}
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, &CredentialError{Path: resolved, Err: err}
	}

	cred, err := ParseCredential(data)
	if err != nil {
		return nil, &CredentialError{Path: resolved, Err: fmt.Errorf("%w: %w", ErrInvalidCredential, err)}
	}
	cred.RequestedScopes = scopes

	logger := logging.WithOperation(s.logger, "credential.load").With(logging.Path(resolved))

	if cred.Valid(s.now()) {
		logger.Debug("credential is valid", slog.Time("expiry", cred.Expiry))
		return cred, nil
	}

	if cred.RefreshToken == "" {
		s.record(ctx, RefreshResultExpired)
		logger.Debug("credential expired without refresh token")
		return nil, &CredentialError{Path: resolved, Err: ErrRefreshUnavailable}
	}

	start := s.now()
	tok, err := s.refresh(ctx, cred)
	if err != nil {
		s.record(ctx, RefreshResultFailure)
		logger.Debug("token refresh failed", logging.Err(err))
		return nil, &CredentialError{Path: resolved, Err: fmt.Errorf("%w: %w", ErrRefreshFailed, err)}
	}
	cred.apply(tok)

	out, err := cred.Marshal()
	if err != nil {
		return nil, &CredentialError{Path: resolved, Err: fmt.Errorf("failed to encode refreshed credential: %w", err)}
	}
	if err := writeFileAtomic(resolved, out, info.Mode().Perm()); err != nil {
		return nil, &CredentialError{Path: resolved, Err: fmt.Errorf("failed to save refreshed credential: %w", err)}
	}

	s.record(ctx, RefreshResultSuccess)
	logger.Debug("credential refreshed",
		logging.Token("access_token", cred.AccessToken),
		slog.Time("expiry", cred.Expiry),
		logging.Duration(s.now().Sub(start)),
	)

	return cred, nil
}

// refresh exchanges the refresh token for a new access token at the credential's token URI.
func (s *Store) refresh(ctx context.Context, cred *Credential) (*oauth2.Token, error) {
	if s.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	}

	// Seed with the refresh token only so the source always performs the exchange.
	ts := cred.oauthConfig().TokenSource(ctx, &oauth2.Token{RefreshToken: cred.RefreshToken})
	tok, err := ts.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("token endpoint returned an empty access token")
	}
	return tok, nil
}

func (s *Store) record(ctx context.Context, result string) {
	if s.metrics != nil {
		s.metrics.RecordOAuthTokenRefresh(ctx, result)
	}
}

// ResolvePath expands a leading "~" and returns the absolute, symlink-resolved path.
func ResolvePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("credential path is empty")
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to find user home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if target, err := filepath.EvalSymlinks(abs); err == nil {
		return target, nil
	}
	return abs, nil
}

// writeFileAtomic replaces path with data so readers never observe a partial file.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
