package conf

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Http   HttpConfig   `toml:"http"`
	Dynamo DynamoConfig `toml:"dynamodb"`
	Judge  JudgeConfig  `toml:"judge"`
}

type HttpConfig struct {
	Address        string   `toml:"address"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

type DynamoConfig struct {
	Region       string `toml:"region"`
	RatingsTable string `toml:"ratings_table"`
}

type JudgeConfig struct {
	SubmQueueUrl string `toml:"subm_queue_url"`
	RespQueueUrl string `toml:"resp_queue_url"`
	TimeoutSecs  int    `toml:"timeout_secs"`
}

func defaultConfig() Config {
	return Config{
		Http: HttpConfig{
			Address:        ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Dynamo: DynamoConfig{
			Region:       "eu-central-1",
			RatingsTable: "CodeClashRatings",
		},
		Judge: JudgeConfig{
			TimeoutSecs: 30,
		},
	}
}

// Read loads the server configuration from a TOML file and then applies
// environment variable overrides. A missing file is not an error; the
// defaults plus env vars are used instead.
func Read(path string) (Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.Http.Address = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		cfg.Dynamo.Region = v
	}
	if v := os.Getenv("RATINGS_DDB_TABLE"); v != "" {
		cfg.Dynamo.RatingsTable = v
	}
	if v := os.Getenv("JUDGE_SUBM_SQS_URL"); v != "" {
		cfg.Judge.SubmQueueUrl = v
	}
	if v := os.Getenv("JUDGE_RESP_SQS_URL"); v != "" {
		cfg.Judge.RespQueueUrl = v
	}

	return cfg, nil
}
