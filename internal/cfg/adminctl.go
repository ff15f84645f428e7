package cfg

import (
	"os"
	"path/filepath"
	"time"

	"github.com/robosite/storefront/pkg/logger"
)

// AdminCtlCfg — конфигурация терминальной админ-консоли.
type AdminCtlCfg struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	CredPath       string // путь к файлу сохраненных учетных данных
}

func LoadAdminCtl(log logger.Logger) (*AdminCtlCfg, error) {
	const (
		defaultBaseURL = "http://localhost:8080"
		defaultTimeout = 15 * time.Second
	)

	timeout, err := parseDurationEnv("ADMINCTL_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid ADMINCTL_TIMEOUT")
		return nil, err
	}

	credPath := getEnv("ADMINCTL_CRED_PATH")
	if credPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		credPath = filepath.Join(home, ".storefront", "admin_credential.json")
	}

	return &AdminCtlCfg{
		APIBaseURL:     getEnvOrDefault("ADMINCTL_API_URL", defaultBaseURL),
		RequestTimeout: timeout,
		CredPath:       credPath,
	}, nil
}
