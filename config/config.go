package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Mail      MailConfig
	Planilhas PlanilhasConfig
	Upload    UploadConfig
	Admin     AdminConfig
	Redis     RedisConfig
	S3        S3Config
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	Secret             string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
	// ContatoInbox recebe as mensagens do formulário de contato e os
	// avisos de documentação enviada
	ContatoInbox string
}

// PlanilhasConfig aponta as planilhas externas de homologação.
// SearchDirs é percorrido em ordem; o primeiro arquivo existente vence.
type PlanilhasConfig struct {
	SearchDirs        []string
	Homologados       string
	ControleQualidade string
	RequisitosLegais  string
}

type UploadConfig struct {
	Dir               string
	MaxSizeBytes      int64
	AllowedExtensions []string
}

// AdminConfig substitui a lista fixa de credenciais do painel: os e-mails
// autorizados e o hash bcrypt da senha vêm do ambiente
type AdminConfig struct {
	AllowedEmails []string
	PasswordHash  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	BaseURL         string
	Enabled         bool
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "admin"),
			Password: getEnv("DB_PASSWORD", "1234"),
			DBName:   getEnv("DB_NAME", "portal_fornecedores"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", "your-secret-key"),
			AccessTokenExpiry:  parseDuration(getEnv("JWT_ACCESS_TOKEN_EXPIRY", "1h")),
			RefreshTokenExpiry: parseDuration(getEnv("JWT_REFRESH_TOKEN_EXPIRY", "168h")),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Mail: MailConfig{
			Host:         getEnv("MAIL_HOST", "smtp.gmail.com"),
			Port:         parseInt(getEnv("MAIL_PORT", "587"), 587),
			Username:     getEnv("MAIL_USERNAME", ""),
			Password:     getEnv("MAIL_PASSWORD", ""),
			Sender:       getEnv("MAIL_DEFAULT_SENDER", "portal@engeman.net"),
			ContatoInbox: getEnv("MAIL_CONTATO_INBOX", "suprimentos@engeman.net"),
		},
		Planilhas: PlanilhasConfig{
			SearchDirs:        parseSlice(getEnv("PLANILHAS_DIRS", "./uploads,./static")),
			Homologados:       getEnv("PLANILHA_HOMOLOGADOS", "fornecedores_homologados.xlsx"),
			ControleQualidade: getEnv("PLANILHA_CONTROLE_QUALIDADE", "atendimento controle_qualidade.xlsx"),
			RequisitosLegais:  getEnv("PLANILHA_REQUISITOS_LEGAIS", "CLAF.xlsx"),
		},
		Upload: UploadConfig{
			Dir:               getEnv("UPLOAD_DIR", "./uploads"),
			MaxSizeBytes:      int64(parseInt(getEnv("UPLOAD_MAX_SIZE_MB", "20"), 20)) * 1024 * 1024,
			AllowedExtensions: parseSlice(getEnv("UPLOAD_ALLOWED_EXTENSIONS", "pdf,doc,docx,jpg,jpeg,png,xlsx,csv")),
		},
		Admin: AdminConfig{
			AllowedEmails: parseSlice(getEnv("ADMIN_ALLOWED_EMAILS", "")),
			PasswordHash:  getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
		},
		S3: S3Config{
			Region:          getEnv("AWS_REGION", "sa-east-1"),
			Bucket:          getEnv("AWS_S3_BUCKET", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			BaseURL:         getEnv("AWS_S3_BASE_URL", ""),
			Enabled:         getEnv("AWS_S3_BUCKET", "") != "",
		},
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default 1h", s)
		return time.Hour
	}
	return duration
}

func parseInt(s string, defaultValue int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}
	return v
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
