package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
		// APIKeys map session -> key; kosong berarti auth dimatikan
		// (deploy lokal / di belakang gateway sendiri)
		APIKeys map[string]string `yaml:"apiKeys"`
	} `yaml:"server"`

	Database struct {
		Driver   string `yaml:"driver"` // mysql | postgres
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"database"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	Resolver struct {
		Endpoint string `yaml:"endpoint"`
		APIKey   string `yaml:"apiKey"`
		APIHost  string `yaml:"apiHost"`
	} `yaml:"resolver"`

	Speech struct {
		Endpoint string `yaml:"endpoint"`
		APIKey   string `yaml:"apiKey"`
	} `yaml:"speech"`

	Literature struct {
		PubMedBaseURL          string `yaml:"pubmedBaseURL"`
		SemanticScholarBaseURL string `yaml:"semanticScholarBaseURL"`
		Dedupe                 bool   `yaml:"dedupe"`
	} `yaml:"literature"`

	Groq struct {
		BaseURL string   `yaml:"baseURL"`
		Model   string   `yaml:"model"`
		APIKeys []string `yaml:"apiKeys"`
	} `yaml:"groq"`
}

// Load baca file config.yaml
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = "mysql"
	}
	if c.Literature.PubMedBaseURL == "" {
		c.Literature.PubMedBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"
	}
	if c.Literature.SemanticScholarBaseURL == "" {
		c.Literature.SemanticScholarBaseURL = "https://api.semanticscholar.org/graph/v1"
	}
	if c.Groq.BaseURL == "" {
		c.Groq.BaseURL = "https://api.groq.com/openai/v1"
	}
	if c.Groq.Model == "" {
		c.Groq.Model = "llama-3.3-70b-versatile"
	}
	// keys juga bisa dari env, biar config.yaml gak perlu simpan secret
	for _, name := range []string{"GROQ_API_KEY_1", "GROQ_API_KEY_2", "GROQ_API_KEY_3"} {
		if v := os.Getenv(name); v != "" {
			c.Groq.APIKeys = append(c.Groq.APIKeys, v)
		}
	}
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// Helper untuk build DSN Postgres
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}
