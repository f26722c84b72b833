package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/viper"
	"github.com/sweepr/sweepr/internal/core/domain"
	"github.com/sweepr/sweepr/pkg/wallet"
)

const (
	// NetworkKey is the name of the bitcoin network to sweep funds on
	NetworkKey = "NETWORK"
	// ExplorerURLKey is the base url of the esplora api used to scan the
	// chain. Defaults to the mempool.space instance of the selected network
	ExplorerURLKey = "EXPLORER_URL"
	// DatadirKey is the local data directory where wallet states are persisted
	DatadirKey = "DATADIR"
	// PersistKey makes wallet states be stored on disk instead of memory
	PersistKey = "PERSIST"
	// ResumeKey makes wallets reuse the states of previous runs. Implies
	// PersistKey
	ResumeKey = "RESUME"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// StopGapKey is the number of consecutive unused addresses after which a
	// branch scan stops
	StopGapKey = "STOP_GAP"
	// ParallelismKey bounds the number of wallets built concurrently
	ParallelismKey = "PARALLELISM"
	// FeeTargetKey is the confirmation target, in blocks, of sweep txs
	FeeTargetKey = "FEE_TARGET"
	// CallTimeoutKey is the timeout in seconds of every chain provider call
	CallTimeoutKey = "CALL_TIMEOUT"
	// RequestsPerSecondKey throttles the requests to the explorer, 0 means
	// unlimited
	RequestsPerSecondKey = "REQUESTS_PER_SECOND"
	// StatsFileKey is the path of the file where prometheus metrics are
	// dumped at the end of a run, if defined
	StatsFileKey = "STATS_FILE"

	DbLocation = "db"
)

var (
	vip            *viper.Viper
	defaultDatadir = btcutil.AppDataDir("sweepr", false)

	defaultExplorerURLs = map[string]string{
		"mainnet": "https://mempool.space/api",
		"testnet": "https://mempool.space/testnet/api",
		"signet":  "https://mempool.space/signet/api",
		"regtest": "http://localhost:3000",
	}
)

func init() {
	vip = viper.New()
}

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("SWEEPR")
	vip.AutomaticEnv()

	vip.SetDefault(NetworkKey, "mainnet")
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(PersistKey, false)
	vip.SetDefault(ResumeKey, false)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(StopGapKey, domain.DefaultStopGap)
	vip.SetDefault(ParallelismKey, domain.DefaultParallelism)
	vip.SetDefault(FeeTargetKey, domain.DefaultFeeTarget)
	vip.SetDefault(CallTimeoutKey, 30)
	vip.SetDefault(RequestsPerSecondKey, 0)

	if err := Validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}
	return nil
}

// Set overrides the value of the given key, ie. with a command line flag.
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetNetwork returns the canonical name of the configured network.
func GetNetwork() string {
	net, err := wallet.NetworkFromName(GetString(NetworkKey))
	if err != nil {
		return GetString(NetworkKey)
	}
	return wallet.NetworkName(net)
}

// GetExplorerURL returns the configured explorer url or the default one
// for the configured network.
func GetExplorerURL() string {
	if u := GetString(ExplorerURLKey); len(u) > 0 {
		return u
	}
	return defaultExplorerURLs[GetNetwork()]
}

func GetCallTimeout() time.Duration {
	return time.Duration(GetInt(CallTimeoutKey)) * time.Second
}

// GetStoreDir returns the directory where wallet states are persisted, or
// an empty string if they live in memory.
func GetStoreDir() string {
	if !GetBool(PersistKey) && !GetBool(ResumeKey) {
		return ""
	}
	return filepath.Join(GetDatadir(), DbLocation)
}

// Validate checks the current values, including those overridden after
// InitConfig.
func Validate() error {
	if _, err := wallet.NetworkFromName(GetString(NetworkKey)); err != nil {
		return fmt.Errorf(
			"%s: unknown network %s", err, GetString(NetworkKey),
		)
	}

	explorerURL := GetExplorerURL()
	if len(explorerURL) <= 0 {
		return fmt.Errorf("missing explorer url")
	}
	u, err := url.Parse(explorerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("explorer url must be a valid http(s) url")
	}

	if GetStoreDir() != "" && len(strings.TrimSpace(GetDatadir())) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	if lvl := GetInt(LogLevelKey); lvl < 0 || lvl > 6 {
		return fmt.Errorf("%s must be in range [0, 6]", LogLevelKey)
	}
	for _, key := range []string{
		StopGapKey, ParallelismKey, FeeTargetKey, CallTimeoutKey,
	} {
		if GetInt(key) <= 0 {
			return fmt.Errorf("%s must be greater than zero", key)
		}
	}
	if GetInt(RequestsPerSecondKey) < 0 {
		return fmt.Errorf("%s must not be negative", RequestsPerSecondKey)
	}
	return nil
}

// InitDatadir creates the directory where wallet states are persisted, if
// any.
func InitDatadir() error {
	dir := GetStoreDir()
	if len(dir) <= 0 {
		return nil
	}
	return makeDirectoryIfNotExists(dir)
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
