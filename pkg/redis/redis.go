package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/LICASKJS/backend-engeman/config"
	"github.com/LICASKJS/backend-engeman/pkg/logger"
)

var client *redis.Client

// Init abre a conexão com o Redis e valida com um ping
func Init(cfg *config.RedisConfig) error {
	logger.Info("Inicializando conexão com o Redis", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Falha ao conectar ao Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("falha ao conectar ao Redis: %w", err)
	}

	logger.Info("Conexão com o Redis estabelecida")
	return nil
}

// GetClient retorna o cliente compartilhado
func GetClient() *redis.Client {
	return client
}

// Close encerra a conexão
func Close() error {
	if client != nil {
		logger.Info("Encerrando conexão com o Redis")
		return client.Close()
	}
	return nil
}

// BlacklistToken revoga um token até sua expiração natural
func BlacklistToken(ctx context.Context, token string, expiry time.Duration) error {
	key := fmt.Sprintf("blacklist:%s", token)
	if err := client.Set(ctx, key, "revoked", expiry).Err(); err != nil {
		logger.Error("Falha ao revogar token", err)
		return err
	}
	return nil
}

// IsTokenBlacklisted verifica se o token foi revogado
func IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	key := fmt.Sprintf("blacklist:%s", token)
	val, err := client.Get(ctx, key).Result()

	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Error("Falha ao consultar blacklist de tokens", err)
		return false, err
	}

	return val == "revoked", nil
}
