package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Modos de acceso a datos del backend.
const (
	DataModeREST     = "rest"     // PostgREST del proyecto (respeta RLS con el token del usuario)
	DataModePostgres = "postgres" // conexión directa al Postgres del proyecto (DATABASE_URL)
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App          AppConfig
	Backend      BackendConfig
	DB           DBConfig
	HTTP         HTTPConfig
	Users        UsersConfig
	Confirmation ConfirmationConfig
	Inventory    InventoryConfig
	Console      ConsoleConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// BackendConfig datos del backend hospedado (datos + auth + RPC).
type BackendConfig struct {
	URL            string // https://<proyecto>.supabase.co
	AnonKey        string
	ServiceRoleKey string // solo para la confirmación de email tras el alta de usuarios
	JWTSecret      string // verifica los access tokens emitidos por el servicio de auth
	DataMode       string // rest | postgres
}

// DBConfig configuración de PostgreSQL (solo en DataModePostgres).
// Si DatabaseURL no está vacío, se usa como connection string completo (ej. DATABASE_URL de Supabase).
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	AppName     string // application_name de las conexiones (se ve en pg_stat_activity)
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// UsersConfig reglas de administración de usuarios.
type UsersConfig struct {
	CreateCooldown time.Duration
}

// ConfirmationConfig vida de las confirmaciones pendientes de acciones destructivas.
type ConfirmationConfig struct {
	TTL time.Duration
}

// InventoryConfig parámetros del resumen de inventario.
type InventoryConfig struct {
	LowStockThreshold int
}

// ConsoleConfig opciones del cliente de consola.
type ConsoleConfig struct {
	SessionFile string // vacío = la sesión vive solo en memoria
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, SUPABASE_URL, HTTP_PORT, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "inventario-equipos"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Backend: BackendConfig{
			URL:            strings.TrimRight(getString(v, "SUPABASE_URL", ""), "/"),
			AnonKey:        getString(v, "SUPABASE_ANON_KEY", ""),
			ServiceRoleKey: getString(v, "SUPABASE_SERVICE_ROLE_KEY", ""),
			JWTSecret:      getString(v, "SUPABASE_JWT_SECRET", ""),
			DataMode:       strings.ToLower(getString(v, "BACKEND_DATA_MODE", DataModeREST)),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "postgres"),
			SSLMode:     getString(v, "DB_SSLMODE", "require"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 3000),
			CORSOrigins: getString(v, "HTTP_CORS_ORIGINS", "*"),
		},
		Users: UsersConfig{
			CreateCooldown: time.Duration(getInt(v, "USERS_CREATE_COOLDOWN_SECONDS", 6)) * time.Second,
		},
		Confirmation: ConfirmationConfig{
			TTL: time.Duration(getInt(v, "CONFIRMATION_TTL_SECONDS", 300)) * time.Second,
		},
		Inventory: InventoryConfig{
			LowStockThreshold: getInt(v, "INVENTORY_LOW_STOCK_THRESHOLD", 5),
		},
		Console: ConsoleConfig{
			SessionFile: getString(v, "CONSOLE_SESSION_FILE", ""),
		},
	}
	cfg.DB.AppName = cfg.App.Name

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Backend.URL == "" {
		return fmt.Errorf("config: SUPABASE_URL es obligatorio")
	}
	if c.Backend.AnonKey == "" {
		return fmt.Errorf("config: SUPABASE_ANON_KEY es obligatorio")
	}
	switch c.Backend.DataMode {
	case DataModeREST, DataModePostgres:
	default:
		return fmt.Errorf("config: BACKEND_DATA_MODE inválido %q (rest | postgres)", c.Backend.DataMode)
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
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
