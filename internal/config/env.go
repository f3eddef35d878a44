package config

import (
	"github.com/JaimeStill/lab-catalog/internal/bibliography"
	"github.com/JaimeStill/lab-catalog/pkg/auth"
	"github.com/JaimeStill/lab-catalog/pkg/database"
	"github.com/JaimeStill/lab-catalog/pkg/logging"
	"github.com/JaimeStill/lab-catalog/pkg/queue"
	"github.com/JaimeStill/lab-catalog/pkg/storage"
)

var databaseEnv = &database.Env{
	DSN:             "DATABASE_DSN",
	Host:            "DATABASE_HOST",
	Port:            "DATABASE_PORT",
	Name:            "DATABASE_NAME",
	User:            "DATABASE_USER",
	Password:        "DATABASE_PASSWORD",
	SSLMode:         "DATABASE_SSL_MODE",
	MaxOpenConns:    "DATABASE_MAX_OPEN_CONNS",
	MaxIdleConns:    "DATABASE_MAX_IDLE_CONNS",
	ConnMaxLifetime: "DATABASE_CONN_MAX_LIFETIME",
	ConnTimeout:     "DATABASE_CONN_TIMEOUT",
}

var loggingEnv = &logging.Env{
	Level:   "LOGGING_LEVEL",
	Format:  "LOGGING_FORMAT",
	Source:  "LOGGING_SOURCE",
	Service: "LOGGING_SERVICE",
	Redact:  "LOGGING_REDACT",
}

var storageEnv = &storage.Env{
	Backend:        "STORAGE_BACKEND",
	BasePath:       "STORAGE_BASE_PATH",
	MaxUploadSize:  "STORAGE_MAX_UPLOAD_SIZE",
	MinioEndpoint:  "STORAGE_MINIO_ENDPOINT",
	MinioAccessKey: "STORAGE_MINIO_ACCESS_KEY",
	MinioSecretKey: "STORAGE_MINIO_SECRET_KEY",
	MinioBucket:    "STORAGE_MINIO_BUCKET",
	MinioSecure:    "STORAGE_MINIO_SECURE",
}

var queueEnv = &queue.Env{
	Backend:       "QUEUE_BACKEND",
	Workers:       "QUEUE_WORKERS",
	Buffer:        "QUEUE_BUFFER",
	SubmitOnly:    "QUEUE_SUBMIT_ONLY",
	RedisAddr:     "QUEUE_REDIS_ADDR",
	RedisPassword: "QUEUE_REDIS_PASSWORD",
	RedisDB:       "QUEUE_REDIS_DB",
}

var authEnv = &auth.Env{
	Secret:    "AUTH_SECRET",
	Issuer:    "AUTH_ISSUER",
	AdminRole: "AUTH_ADMIN_ROLE",
}

var parsingEnv = &bibliography.Env{
	JournalSuffixes: "PARSING_JOURNAL_SUFFIXES",
}
