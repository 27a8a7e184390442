package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	Store   StoreConfig
	Session SessionConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env               string // development, staging, production
	Name              string
	LowStockThreshold int // unidades por debajo de las cuales un producto cuenta como stock bajo
}

// StoreConfig configuración del almacén de registros remoto (servicio de persistencia).
// Un solo esquema de endpoints dirigido por configuración: BaseURL apunta al servidor
// (json-server local o instancia hospedada) y PathPrefix agrega el prefijo de ruta
// cuando el despliegue lo requiere (ej. "/api" en el servidor multi-recurso).
type StoreConfig struct {
	BaseURL    string
	PathPrefix string
	Timeout    time.Duration
}

// SessionConfig configuración del almacenamiento local de sesión (carrito, usuario actual).
type SessionConfig struct {
	Dir string // directorio donde se guardan las claves de sesión como archivos JSON
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, STORE_BASE_URL, SESSION_DIR, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:               getString(v, "APP_ENV", "development"),
			Name:              getString(v, "APP_NAME", "abarroteria"),
			LowStockThreshold: getInt(v, "LOW_STOCK_THRESHOLD", 10),
		},
		Store: StoreConfig{
			BaseURL:    getString(v, "STORE_BASE_URL", "http://localhost:3000"),
			PathPrefix: getString(v, "STORE_PATH_PREFIX", ""),
			Timeout:    time.Duration(getInt(v, "STORE_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Session: SessionConfig{
			Dir: getString(v, "SESSION_DIR", ".session"),
		},
	}

	return cfg, nil
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
