package serverconfig

type Config struct {
	HTTPServer HTTPServerConfig `yaml:"httpserver" mapstructure:"httpserver"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Simulation SimulationConfig `yaml:"simulation" mapstructure:"simulation"`
	Archive    ArchiveConfig    `yaml:"archive" mapstructure:"archive"`
}

type HTTPServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

type SimulationConfig struct {
	AskTimeoutMS int `yaml:"ask_timeout_ms" mapstructure:"ask_timeout_ms"`
}

// ArchiveConfig selects where turn records go. The archive is write-mostly
// history and is never used to restore a simulation.
type ArchiveConfig struct {
	Driver       string        `yaml:"driver" mapstructure:"driver"` // memory/mysql/mongodb
	FlushEveryMS int           `yaml:"flush_every_ms" mapstructure:"flush_every_ms"`
	NodeID       int64         `yaml:"node_id" mapstructure:"node_id"`
	MySQL        MySQLConfig   `yaml:"mysql" mapstructure:"mysql"`
	MongoDB      MongoDBConfig `yaml:"mongodb" mapstructure:"mongodb"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
	ShowSQL  bool   `yaml:"show_sql" mapstructure:"show_sql"`
}

type MongoDBConfig struct {
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	Collection      string `yaml:"collection" mapstructure:"collection"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
}
