package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// MinIOConfig holds object storage settings for the S3-compatible
// payload backend.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// LookupConfig tunes the marker-click spatial lookup.
// Metric is one of "euclidean", "manhattan", "haversine"; Tolerance is
// the hit radius in coordinate degrees (meters for haversine).
type LookupConfig struct {
	Metric    string
	Tolerance float64
}

// ViewerConfig tunes the story viewer.
type ViewerConfig struct {
	// Wrap makes Next/Previous wrap around instead of clamping at the
	// first and last item.
	Wrap bool
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables; a .env file can be
// auto-loaded by importing _ "github.com/joho/godotenv/autoload".
type AppConfig struct {
	LogMode string

	// DataDir anchors the default manifest and content locations.
	DataDir      string
	ManifestPath string
	ContentDir   string

	// StorageBackend selects the payload store: "local" or "minio".
	StorageBackend string
	MinIO          MinIOConfig

	Lookup LookupConfig
	Viewer ViewerConfig

	// ThumbnailMaxPx is the longest side of generated image thumbnails.
	// 0 disables thumbnail generation.
	ThumbnailMaxPx int
}

// Load reads configuration from environment variables. Real environment
// variables take precedence over .env contents; no value is required
// for local operation.
func Load() *AppConfig {
	dataDir := getEnv("DATA_DIR", ".")
	return &AppConfig{
		LogMode:        getEnv("LOG_MODE", "dev"),
		DataDir:        dataDir,
		ManifestPath:   getEnv("MANIFEST_PATH", filepath.Join(dataDir, "media_manifest.json")),
		ContentDir:     getEnv("CONTENT_DIR", filepath.Join(dataDir, "uploads")),
		StorageBackend: getEnv("STORAGE_BACKEND", "local"),
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "drone-media"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Lookup: LookupConfig{
			Metric:    getEnv("LOOKUP_METRIC", "euclidean"),
			Tolerance: getEnvFloat("LOOKUP_TOLERANCE", 0.01),
		},
		Viewer: ViewerConfig{
			Wrap: getEnvBool("VIEWER_WRAP", false),
		},
		ThumbnailMaxPx: getEnvInt("THUMBNAIL_MAX_PX", 320),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
