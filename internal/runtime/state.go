package runtime

// ConfigPath stores the path to the configuration file provided via CLI flags.
// ConfigPath 存储通过 CLI 标志提供的配置文件路径。
var ConfigPath string

// JournalDir stores a journal directory given on the command line. It takes
// precedence over the configured directory.
// JournalDir 存储命令行指定的日志目录，优先于配置文件中的目录。
var JournalDir string
