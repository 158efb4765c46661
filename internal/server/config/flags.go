package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/eventportal/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8000")
//	-s string   store driver: postgres or mongo
//	-d string   PostgreSQL DSN
//	-m string   MongoDB URI
//	-n string   MongoDB database name
//	-q string   notifier: smtp, queue or log
//	-l string   log level
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-smtp-insecure  talk to the SMTP server without TLS (local mail catchers)
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-d", "-m", "-n", "-q", "-l", "-u", "-p", "-b", "-g", "-e", "-smtp-insecure"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.StoreDriver, "s", config.StoreDriver, "store driver (postgres|mongo)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.MongoURI, "m", config.MongoURI, "MongoDB URI")
	fs.StringVar(&config.MongoDatabase, "n", config.MongoDatabase, "MongoDB database name")
	fs.StringVar(&config.Notifier, "q", config.Notifier, "notifier (smtp|queue|log)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	fs.BoolVar(&config.SMTPInsecure, "smtp-insecure", config.SMTPInsecure, "SMTP without TLS")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
