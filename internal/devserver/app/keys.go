package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aussiebroadwan/climblog/pkg/cryptox"
	"github.com/aussiebroadwan/climblog/pkg/jwtx"
)

// Keys is the single signing key and the verifier that accepts it.
type Keys struct {
	Signer   *jwtx.EdDSASigner
	KeySet   *jwtx.KeySet
	Verifier *jwtx.EdDSAVerifier
}

// InitKeys loads the sealed signing key from cfg.KeyFile, creating it on
// first start. The key file needs a stable master key to be readable again,
// so without one (or with an empty KeyFile) the key lives only in memory and
// every token dies with the process.
func InitKeys(cfg Config, logger *slog.Logger) (Keys, error) {
	if cfg.MasterKeyPath != "" {
		cryptox.SetMasterKeyPath(cfg.MasterKeyPath)
		logger.Info("master key path configured", "path", cfg.MasterKeyPath)
	}

	keyFile := cfg.KeyFile
	if keyFile != "" && cfg.MasterKeyPath == "" && os.Getenv(cryptox.MasterKeyEnv) == "" {
		logger.Warn("no master key configured, not persisting the signing key", "path", keyFile)
		keyFile = ""
	}

	var sealer *cryptox.Sealer
	if keyFile != "" {
		var err error
		if sealer, err = cryptox.NewSealer("devserver-signing-key"); err != nil {
			return Keys{}, fmt.Errorf("signing key sealer: %w", err)
		}
	}

	pemKey, err := cryptox.LoadOrCreateEd25519Key(keyFile, sealer)
	if err != nil {
		return Keys{}, err
	}

	kid := cryptox.FingerprintToken(string(pemKey))[:16]
	signer, err := jwtx.NewSignerEdDSA(kid, pemKey)
	if err != nil {
		return Keys{}, err
	}

	keys := jwtx.NewKeySet()
	if err := keys.AddSigner(signer); err != nil {
		return Keys{}, err
	}

	if keyFile == "" {
		logger.Warn("using an ephemeral signing key, tokens will not survive a restart", "kid", kid)
	} else {
		logger.Info("signing key loaded", "kid", kid, "path", keyFile)
	}

	return Keys{
		Signer:   signer,
		KeySet:   keys,
		Verifier: jwtx.NewVerifierEdDSA(keys, cfg.Issuer, nil),
	}, nil
}
