package sqlconn

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"

	"github.com/biyonik/go-querykit/dialect"
)

// Config, veritabanı bağlantısının nereye ve nasıl yapılacağını tanımlar. Alan etiketleri
// viper (mapstructure) ve YAML/JSON yüklemesi için kullanılır.
type Config struct {
	Driver       string            `json:"driver" mapstructure:"driver"` // "mysql", "postgres" veya "sqlite"
	Host         string            `json:"host" mapstructure:"host"`
	Port         int               `json:"port" mapstructure:"port"`
	Database     string            `json:"database" mapstructure:"database"` // sqlite için dosya yolu
	Username     string            `json:"username" mapstructure:"username"`
	Password     string            `json:"password,omitempty" mapstructure:"password"`
	Charset      string            `json:"charset,omitempty" mapstructure:"charset"`
	Collation    string            `json:"collation,omitempty" mapstructure:"collation"`
	TLS          bool              `json:"tls" mapstructure:"tls"`
	Params       map[string]string `json:"params,omitempty" mapstructure:"params"` // driver'a aynen geçen ek DSN parametreleri
	MaxOpenConns int               `json:"maxOpenConns" mapstructure:"max_open_conns"`
	MaxIdleConns int               `json:"maxIdleConns" mapstructure:"max_idle_conns"`
	ConnMaxLife  time.Duration     `json:"connMaxLife" mapstructure:"conn_max_life"`
	ConnMaxIdle  time.Duration     `json:"connMaxIdle" mapstructure:"conn_max_idle"`
}

// DefaultConfig returns a MySQL configuration for localhost with sensible pool limits.
func DefaultConfig() *Config {
	return &Config{
		Driver:       dialect.MySQLName,
		Host:         "localhost",
		Port:         3306,
		Charset:      "utf8mb4",
		Collation:    "utf8mb4_unicode_ci",
		MaxOpenConns: 25,
		MaxIdleConns: 5,
		ConnMaxLife:  5 * time.Minute,
		ConnMaxIdle:  5 * time.Minute,
	}
}

// Dialect resolves the configured driver name to a dialect.
func (c *Config) Dialect() (dialect.Dialect, error) {
	return dialect.Lookup(c.Driver)
}

// DSN, yapılandırılmış driver'ın anlayacağı bağlantı dizesini üretir.
func (c *Config) DSN() (string, error) {
	d, err := c.Dialect()
	if err != nil {
		return "", err
	}
	switch d.Name {
	case dialect.MySQLName:
		return c.mysqlConfig().FormatDSN(), nil
	case dialect.PostgresName:
		dsn := c.postgresURL().String()
		if _, err := pgx.ParseConfig(dsn); err != nil {
			return "", fmt.Errorf("sqlconn: invalid postgres config: %w", err)
		}
		return dsn, nil
	default:
		return c.sqlitePath(), nil
	}
}

func (c *Config) mysqlConfig() *mysql.Config {
	mc := mysql.NewConfig()
	mc.User = c.Username
	mc.Passwd = c.Password
	mc.Net = "tcp"
	host := c.Host
	if host == "" {
		host = "localhost"
	}
	if c.Port > 0 {
		mc.Addr = net.JoinHostPort(host, strconv.Itoa(c.Port))
	} else {
		mc.Addr = host
	}
	mc.DBName = c.Database
	mc.Collation = c.Collation
	// DATETIME sütunlarının time.Time'a dönüşmesi için gerekli
	mc.ParseTime = true
	if c.TLS {
		mc.TLSConfig = "true"
	}
	if c.Charset != "" || len(c.Params) > 0 {
		mc.Params = make(map[string]string, len(c.Params)+1)
		if c.Charset != "" {
			mc.Params["charset"] = c.Charset
		}
		for k, v := range c.Params {
			mc.Params[k] = v
		}
	}
	return mc
}

func (c *Config) postgresURL() *url.URL {
	u := &url.URL{Scheme: "postgres", Path: "/" + c.Database}
	host := c.Host
	if host == "" {
		host = "localhost"
	}
	if c.Port > 0 {
		u.Host = net.JoinHostPort(host, strconv.Itoa(c.Port))
	} else {
		u.Host = host
	}
	switch {
	case c.Username != "" && c.Password != "":
		u.User = url.UserPassword(c.Username, c.Password)
	case c.Username != "":
		u.User = url.User(c.Username)
	}
	q := url.Values{}
	if c.TLS {
		q.Set("sslmode", "require")
	} else {
		q.Set("sslmode", "disable")
	}
	for k, v := range c.Params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u
}

func (c *Config) sqlitePath() string {
	path := c.Database
	if path == "" {
		path = ":memory:"
	}
	if len(c.Params) == 0 {
		return path
	}
	q := url.Values{}
	for k, v := range c.Params {
		q.Set(k, v)
	}
	return path + "?" + q.Encode()
}
