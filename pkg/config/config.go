package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// URLs padrão da API de cobrança do Banco Inter (PJ, com certificado).
const (
	DefaultBaseURL  = "https://cdpj.partners.bancointer.com.br/cobranca/v2/boletos"
	DefaultTokenURL = "https://cdpj.partners.bancointer.com.br/oauth/v2/token"

	// DefaultHTTPTimeout timeout das requisições, em segundos.
	DefaultHTTPTimeout = 60
)

// Config agrupa a configuração da aplicação (leitura via Viper de env e opcionalmente arquivo).
type Config struct {
	App   AppConfig
	Log   LogConfig
	Inter InterConfig
}

// AppConfig configuração geral da aplicação.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// LogConfig nível de log (trace, debug, info, warn, error).
type LogConfig struct {
	Level string
}

// InterConfig credenciais e endpoints da API do Banco Inter.
// ClientID e ClientSecret são UUIDs emitidos no internet banking PJ;
// CertPath/KeyPath apontam para o par .crt/.key exigido em toda requisição (mTLS).
type InterConfig struct {
	ClientID     string
	ClientSecret string
	Conta        string // número da conta corrente PJ (aceita pontuação)
	CertPath     string
	KeyPath      string
	BaseURL      string
	TokenURL     string
	HTTPTimeout  int // segundos; a emissão registra na CIP e pode demorar
}

// ErrConfig agrupa erros de configuração inválida.
var ErrConfig = errors.New("configuração inválida")

// Load lê a configuração de variáveis de ambiente (e opcionalmente de arquivo .env).
// As env vars têm prioridade. Nomes esperados: APP_ENV, LOG_LEVEL, INTER_CLIENT_ID,
// INTER_CLIENT_SECRET, INTER_CONTA, INTER_CERT_PATH, INTER_KEY_PATH, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: arquivo de configuração (.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos erro se não existir

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "interboleto"),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		Inter: InterConfig{
			ClientID:     getString(v, "INTER_CLIENT_ID", ""),
			ClientSecret: getString(v, "INTER_CLIENT_SECRET", ""),
			Conta:        getString(v, "INTER_CONTA", ""),
			CertPath:     getString(v, "INTER_CERT_PATH", ""),
			KeyPath:      getString(v, "INTER_KEY_PATH", ""),
			BaseURL:      getString(v, "INTER_BASE_URL", DefaultBaseURL),
			TokenURL:     getString(v, "INTER_TOKEN_URL", DefaultTokenURL),
			HTTPTimeout:  getInt(v, "INTER_HTTP_TIMEOUT", DefaultHTTPTimeout),
		},
	}

	if err := cfg.Inter.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate confere o mínimo para conversar com a API: credenciais UUID e
// caminhos de certificado presentes.
func (c InterConfig) Validate() error {
	if _, err := uuid.Parse(c.ClientID); err != nil {
		return fmt.Errorf("%w: INTER_CLIENT_ID deve ser um UUID: %v", ErrConfig, err)
	}
	if _, err := uuid.Parse(c.ClientSecret); err != nil {
		return fmt.Errorf("%w: INTER_CLIENT_SECRET deve ser um UUID: %v", ErrConfig, err)
	}
	if c.CertPath == "" || c.KeyPath == "" {
		return fmt.Errorf("%w: INTER_CERT_PATH e INTER_KEY_PATH são obrigatórios", ErrConfig)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
