// Shared helpers for quantumhabit CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/RachelLancelot/quantumhabit/internal/ledger"
	"github.com/RachelLancelot/quantumhabit/internal/relay"
	"github.com/RachelLancelot/quantumhabit/internal/store"
	"github.com/RachelLancelot/quantumhabit/pkg/fhe"
	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

// secretFileName is the engine secret file inside the data directory. The
// file guards every ciphertext in the ledger; it is created with owner-only
// permissions on first run.
const secretFileName = "fhe.key"

// session bundles the opened store with the ledger, engine and relay built
// over it. Callers must defer close.
type session struct {
	store  *store.Store
	engine *fhe.Engine
	ledger *ledger.Ledger
	relay  *relay.Relay
	log    *zap.Logger
}

func (s *session) close() {
	_ = s.store.Close()
	if s.log != nil {
		_ = s.log.Sync()
	}
}

// openSession resolves the data directory, loads or creates the engine
// secret, and opens the store.
func openSession() (*session, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	secret, err := loadOrCreateSecret(filepath.Join(dataDir, secretFileName))
	if err != nil {
		return nil, err
	}
	engine, err := fhe.NewEngine(secret)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	s := store.New()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: dataDir}
	if err := s.Open(cfg); err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	log := zap.NewNop()
	if flagVerbose {
		log, err = zap.NewDevelopment()
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("logger: %w", err)
		}
	}

	return &session{
		store:  s,
		engine: engine,
		ledger: ledger.New(s, engine, ledger.WithLogger(log)),
		relay:  relay.New(s, engine),
		log:    log,
	}, nil
}

// loadOrCreateSecret reads the engine secret, generating and persisting a
// fresh one on first run.
func loadOrCreateSecret(path string) ([]byte, error) {
	secret, err := os.ReadFile(path)
	if err == nil {
		if len(secret) != fhe.SecretSize {
			return nil, fmt.Errorf("secret file %s is corrupt: %w", path, types.ErrInvalidInput)
		}
		return secret, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read secret: %w", err)
	}

	secret, err = fhe.GenerateSecret()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, secret, 0o600); err != nil {
		return nil, fmt.Errorf("write secret: %w", err)
	}
	return secret, nil
}

// account resolves the acting account: --account flag > config.yaml account.
func account() (types.Account, error) {
	if flagAccount != "" {
		return types.Account(flagAccount), nil
	}
	if configAccount != "" {
		return types.Account(configAccount), nil
	}
	return "", fmt.Errorf("no account: set --account or the account key in config.yaml")
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// commitAndSimulate drives the dual-call retrieval protocol for a single
// aggregation: the commit phase authorizes the result handle, the simulate
// phase re-derives it.
func commitAndSimulate(caller types.Account, fn func(ledger.Call) (types.Handle, *ledger.Receipt, error)) (types.Handle, error) {
	if _, _, err := fn(ledger.Call{Caller: caller, Mode: ledger.Commit}); err != nil {
		return types.Handle{}, err
	}
	handle, _, err := fn(ledger.Call{Caller: caller, Mode: ledger.Simulate})
	if err != nil {
		return types.Handle{}, err
	}
	return handle, nil
}

// fail prints the error and exits with the given code.
func fail(code int, prefix string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, err)
	os.Exit(code)
}
