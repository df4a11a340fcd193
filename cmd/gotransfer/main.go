// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/navwar/gotransfer/pkg/fs"
	"github.com/navwar/gotransfer/pkg/lfs"
	"github.com/navwar/gotransfer/pkg/log"
	"github.com/navwar/gotransfer/pkg/presentation"
	"github.com/navwar/gotransfer/pkg/s3fs"
	"github.com/navwar/gotransfer/pkg/transfer"
	"github.com/navwar/gotransfer/pkg/ts"
)

const (
	GoTransferVersion = "0.0.1"
)

const (
	EnvPrefix = "GOTRANSFER"
)

// AWS Flags
const (
	// Profile
	flagAWSProfile       = "aws-profile"
	flagAWSDefaultRegion = "aws-default-region"
	flagAWSRegion        = "aws-region"
	// Credentials
	flagAWSAccessKeyID     = "aws-access-key-id"
	flagAWSSecretAccessKey = "aws-secret-access-key"
	flagAWSSessionToken    = "aws-session-token"
	// Client
	flagAWSRetryMaxAttempts = "aws-retry-max-attempts"
	// TLS
	flagAWSInsecureSkipVerify = "aws-insecure-skip-verify"
	// Miscellaneous
	flagAWSS3Endpoint     = "aws-s3-endpoint"
	flagAWSS3UsePathStyle = "aws-s3-use-path-style"
	flagBucketKeyEnabled  = "aws-bucket-key-enabled"
)

// AWS Defaults
const (
	DefaultAWSRegion = "us-east-1"
)

// Debug Flag
const (
	flagDebug = "debug"
)

// Config Flag
const (
	flagConfig = "config"
)

// Transfer Flags
const (
	flagSource      = "source"
	flagDestination = "destination"
	flagFileTypes   = "file-types"
	flagDryRun      = "dry-run"
	flagVerbose     = "verbose"
	flagPartSize    = "part-size"
	flagMaxErrors   = "max-errors"
)

// Transfer Defaults
const (
	DefaultPartSize  = 1_048_576 * 100 // 100 MiB
	DefaultMaxErrors = 10

	MinimumPartSize = 1_048_576 * 5 // 5 MiB
)

// Output Flags
const (
	flagTimeLayout            = "time-layout"
	flagTimeZone              = "time-zone"
	flagHumanReadableFileSize = "human-readable-file-size"
	flagNoColor               = "no-color"
)

// Log Flags
const (
	flagLogPath            = "log-path"
	flagLogFormat          = "log-format"
	flagLogPerm            = "log-perm"
	flagLogClientSigning   = "log-client-signing"
	flagLogClientRequests  = "log-client-requests"
	flagLogClientResponses = "log-client-responses"
	flagLogClientRetries   = "log-client-retries"
)

// Log Defaults
const (
	DefaultFormat = log.FormatText
)

// initAWSFlags initializes the AWS flags used by S3 destinations.
func initAWSFlags(flag *pflag.FlagSet) {
	// Profile
	flag.String(flagAWSProfile, "default", "AWS Profile")
	flag.String(flagAWSDefaultRegion, DefaultAWSRegion, "AWS Default Region")
	flag.String(flagAWSRegion, "", "AWS Region (overrides default region)")
	// Credentials
	flag.String(flagAWSAccessKeyID, "", "AWS Access Key ID")
	flag.String(flagAWSSecretAccessKey, "", "AWS Secret Access Key")
	flag.String(flagAWSSessionToken, "", "AWS Session Token")
	// Client
	flag.Int(flagAWSRetryMaxAttempts, 5, "the maximum number attempts an AWS API client will call an operation that fails with a retryable error.")
	// TLS
	flag.Bool(flagAWSInsecureSkipVerify, false, "Skip verification of AWS TLS certificate")
	// Misceallenous
	flag.String(flagAWSS3Endpoint, "", "AWS S3 Endpoint URL")
	flag.Bool(flagAWSS3UsePathStyle, false, "Use path-style addressing (default is to use virtual-host-style addressing)")
	flag.Bool(flagBucketKeyEnabled, false, "bucket key enabled")
}

func initDebugFlags(flag *pflag.FlagSet) {
	flag.BoolP(flagDebug, "d", false, "print debug messages")
}

func initConfigFlags(flag *pflag.FlagSet) {
	flag.StringP(flagConfig, "c", "", "path to a configuration file in yaml, json, or toml format.  Flags and environment variables take precedence.")
}

func initTransferFlags(flag *pflag.FlagSet) {
	flag.StringP(flagSource, "s", "", "the source directory")
	flag.StringP(flagDestination, "o", "", "the destination directory, or an S3 location in the form s3://bucket/prefix.  Created if it does not exist.")
	flag.StringP(flagFileTypes, "t", "", "a comma-separated list of file extensions to copy, e.g., jpg,png,mov.  Defaults to all files.")
	flag.BoolP(flagDryRun, "n", false, "show what would be copied without creating or modifying anything")
	flag.BoolP(flagVerbose, "v", false, "also print files skipped by the file type filter")
	flag.Int(flagPartSize, DefaultPartSize, fmt.Sprintf("size of parts in bytes when transferring to S3 (minimum %d)", MinimumPartSize))
	flag.Int(flagMaxErrors, DefaultMaxErrors, "maximum number of errors listed in the summary.  Use 0 to list every error.")
}

func initOutputFlags(flag *pflag.FlagSet) {
	flag.String(flagTimeLayout, "Default", "the layout to use for timestamps.  Use go layout format, or the name of a layout.  Use gotransfer layouts to show all named layouts.")
	flag.StringP(flagTimeZone, "z", "Local", "the timezone to use for timestamps")
	flag.Bool(flagHumanReadableFileSize, false, "display file sizes in human-readable format")
	flag.Bool(flagNoColor, false, "disable colors in output")
}

func initLogFlags(flag *pflag.FlagSet) {
	flag.StringP(flagLogFormat, "f", DefaultFormat, "output format.  Either text for the console printer or jsonl for structured logs.")
	flag.String(flagLogPath, "-", "path to the log output.  Defaults to the operating system's stdout device.")
	flag.String(flagLogPerm, "0600", "file permissions for log output file as unix file mode.")
	flag.Bool(flagLogClientSigning, false, "log AWS client signature requests")
	flag.Bool(flagLogClientRequests, false, "log AWS client requests")
	flag.Bool(flagLogClientResponses, false, "log AWS client responses")
	flag.Bool(flagLogClientRetries, false, "log AWS client retries")
}

func initTransferCommandFlags(flag *pflag.FlagSet) {
	initDebugFlags(flag)
	initConfigFlags(flag)
	initAWSFlags(flag)
	initTransferFlags(flag)
	initOutputFlags(flag)
	initLogFlags(flag)
}

func initViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	err := v.BindPFlags(cmd.Flags())
	if err != nil {
		return v, fmt.Errorf("error binding flag set to viper: %w", err)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv() // set environment variables to overwrite config
	if configPath := v.GetString(flagConfig); len(configPath) > 0 {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return v, fmt.Errorf("error reading config file %q: %w", configPath, err)
		}
	}
	return v, nil
}

func checkLogConfig(v *viper.Viper) error {
	logPath := v.GetString(flagLogPath)
	if len(logPath) == 0 {
		return fmt.Errorf("log path is missing")
	}
	logPerm := v.GetString(flagLogPerm)
	if len(logPerm) == 0 {
		return fmt.Errorf("log perm is missing")
	}
	_, err := strconv.ParseUint(logPerm, 8, 32)
	if err != nil {
		return fmt.Errorf("invalid format for log perm: %s", logPerm)
	}
	if logFormat := v.GetString(flagLogFormat); logFormat != log.FormatText && logFormat != log.FormatJSONL {
		return fmt.Errorf("invalid log format %q, expecting %s or %s", logFormat, log.FormatText, log.FormatJSONL)
	}
	return nil
}

func checkAWSConfig(v *viper.Viper) error {
	if retryMaxAttempts := v.GetInt(flagAWSRetryMaxAttempts); retryMaxAttempts < 0 {
		return fmt.Errorf("%q value %d is invalid, expecting a value greater than or equal to 0", flagAWSRetryMaxAttempts, retryMaxAttempts)
	}
	if partSize := v.GetInt(flagPartSize); partSize < MinimumPartSize {
		return fmt.Errorf("part size %d is less than the minimum part size %d", partSize, MinimumPartSize)
	}
	return nil
}

func checkTransferConfig(v *viper.Viper, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("expecting no positional arguments, but found %d arguments", len(args))
	}
	source := v.GetString(flagSource)
	if len(source) == 0 {
		return fmt.Errorf("source is missing")
	}
	if strings.HasPrefix(source, "s3://") {
		return fmt.Errorf("source %q is invalid: the source must be a local directory", source)
	}
	destination := v.GetString(flagDestination)
	if len(destination) == 0 {
		return fmt.Errorf("destination is missing")
	}
	if strings.HasPrefix(destination, "s3://") {
		if _, _, err := s3fs.ParseURI(destination); err != nil {
			return err
		}
		if err := checkAWSConfig(v); err != nil {
			return fmt.Errorf("error with AWS configuration: %w", err)
		}
	} else {
		sourcePath, err := localPath(source)
		if err != nil {
			return err
		}
		destinationPath, err := localPath(destination)
		if err != nil {
			return err
		}
		// check for cycle errors
		if err := lfs.Check(sourcePath, destinationPath); err != nil {
			return err
		}
	}
	if maxErrors := v.GetInt(flagMaxErrors); maxErrors < 0 {
		return fmt.Errorf("max errors %d is invalid, expecting a value greater than or equal to 0", maxErrors)
	}
	if _, err := ts.ParseLocation(v.GetString(flagTimeZone)); err != nil {
		return fmt.Errorf("error parsing time zone %q: %w", v.GetString(flagTimeZone), err)
	}
	if err := checkLogConfig(v); err != nil {
		return fmt.Errorf("error with log configuration: %w", err)
	}
	return nil
}

// localPath returns the absolute path for a local URI, with or without the file:// scheme.
func localPath(uri string) (string, error) {
	p := strings.TrimPrefix(uri, "file://")
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("error resolving absolute path for %q: %w", uri, err)
	}
	return abs, nil
}

type InitS3ClientInput struct {
	Logger  *log.SimpleLogger
	Profile string
	Region  string
	// AWS Client
	Endpoint           string
	InsecureSkipVerify bool
	RetryMaxAttempts   int
	UsePathStyle       bool
	// AWS Credentials
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	// Client Log Mode
	LogClientSigning   bool
	LogClientRetries   bool
	LogClientRequests  bool
	LogClientResponses bool
}

func InitS3Client(ctx context.Context, input *InitS3ClientInput) *s3.Client {
	clientLogMode := aws.ClientLogMode(0)
	if input.LogClientSigning {
		clientLogMode |= aws.LogSigning
	}
	if input.LogClientRetries {
		clientLogMode |= aws.LogRetries
	}
	if input.LogClientRequests {
		clientLogMode |= aws.LogRequest
	}
	if input.LogClientResponses {
		clientLogMode |= aws.LogResponse
	}

	c := aws.Config{
		ClientLogMode:    clientLogMode,
		RetryMaxAttempts: input.RetryMaxAttempts,
		Region:           input.Region,
		Logger:           log.NewClientLogger(input.Logger),
	}

	if len(input.AccessKeyID) > 0 && len(input.SecretAccessKey) > 0 {
		c.Credentials = credentials.NewStaticCredentialsProvider(
			input.AccessKeyID,
			input.SecretAccessKey,
			input.SessionToken)
	} else {
		sharedConfig, err := config.LoadSharedConfigProfile(ctx, input.Profile)
		if err == nil {
			c.Credentials = credentials.NewStaticCredentialsProvider(
				sharedConfig.Credentials.AccessKeyID,
				sharedConfig.Credentials.SecretAccessKey,
				sharedConfig.Credentials.SessionToken)
		}
	}

	if input.InsecureSkipVerify {
		c.HTTPClient = &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: true,
				},
			},
		}
	}

	client := s3.NewFromConfig(c, func(o *s3.Options) {
		o.UsePathStyle = input.UsePathStyle
		if len(input.Endpoint) > 0 {
			o.BaseEndpoint = aws.String(input.Endpoint)
		}
	})

	return client
}

type InitDestinationInput struct {
	Viper  *viper.Viper
	Logger *log.SimpleLogger
	URI    string
	DryRun bool
}

// InitDestination returns the destination file system and the root path of the destination within it.
func InitDestination(ctx context.Context, input *InitDestinationInput) (fs.FileSystem, string, error) {
	v := input.Viper

	if !strings.HasPrefix(input.URI, "s3://") {
		root, err := localPath(input.URI)
		if err != nil {
			return nil, "", err
		}
		if input.DryRun {
			return lfs.NewReadOnlyLocalFileSystem(), root, nil
		}
		return lfs.NewLocalFileSystem(), root, nil
	}

	bucket, prefix, err := s3fs.ParseURI(input.URI)
	if err != nil {
		return nil, "", err
	}

	region := v.GetString(flagAWSRegion)
	if len(region) == 0 {
		region = v.GetString(flagAWSDefaultRegion)
	}

	profile := v.GetString(flagAWSProfile)
	if len(profile) == 0 {
		profile = "default"
	}

	client := InitS3Client(ctx, &InitS3ClientInput{
		Logger:  input.Logger,
		Profile: profile,
		Region:  region,
		// AWS Client
		Endpoint:           v.GetString(flagAWSS3Endpoint),
		InsecureSkipVerify: v.GetBool(flagAWSInsecureSkipVerify),
		RetryMaxAttempts:   v.GetInt(flagAWSRetryMaxAttempts),
		UsePathStyle:       v.GetBool(flagAWSS3UsePathStyle),
		// AWS Credentials
		AccessKeyID:     v.GetString(flagAWSAccessKeyID),
		SecretAccessKey: v.GetString(flagAWSSecretAccessKey),
		SessionToken:    v.GetString(flagAWSSessionToken),
		// Client Log Mode
		LogClientSigning:   v.GetBool(flagLogClientSigning),
		LogClientRetries:   v.GetBool(flagLogClientRetries),
		LogClientRequests:  v.GetBool(flagLogClientRequests),
		LogClientResponses: v.GetBool(flagLogClientResponses),
	})

	s3FileSystem := s3fs.NewS3FileSystem(&s3fs.NewS3FileSystemInput{
		Bucket:           bucket,
		Prefix:           prefix,
		Client:           client,
		BucketKeyEnabled: v.GetBool(flagBucketKeyEnabled),
		PartSize:         v.GetInt(flagPartSize),
	})

	if input.DryRun {
		return fs.ReadOnly(s3FileSystem), "/", nil
	}
	return s3FileSystem, "/", nil
}

func initLogger(path string, perm string, format string) (*log.SimpleLogger, error) {

	if path == os.DevNull {
		return log.NewSimpleLoggerWithFormat(io.Discard, format), nil
	}

	if path == "-" {
		return log.NewSimpleLoggerWithFormat(os.Stdout, format), nil
	}

	fileMode := os.FileMode(0600)

	if len(perm) > 0 {
		fm, err := strconv.ParseUint(perm, 8, 32)
		if err != nil {
			return nil, fmt.Errorf("error parsing file permissions for log file from %q", perm)
		}
		fileMode = os.FileMode(fm)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, fileMode)
	if err != nil {
		return nil, fmt.Errorf("error opening log file %q: %w", path, err)
	}

	return log.NewSimpleLoggerWithFormat(f, format), nil
}

func initSink(v *viper.Viper, logger *log.SimpleLogger) (transfer.Sink, error) {
	if v.GetString(flagLogFormat) == log.FormatJSONL {
		return presentation.NewLogSink(logger), nil
	}
	location, err := ts.ParseLocation(v.GetString(flagTimeZone))
	if err != nil {
		return nil, fmt.Errorf("error parsing time zone %q: %w", v.GetString(flagTimeZone), err)
	}
	return presentation.NewPrinter(&presentation.PrinterInput{
		Writer: os.Stdout,
		Clock: ts.Clock{
			Layout:   ts.ParseLayout(v.GetString(flagTimeLayout)),
			Location: location,
		},
		MaxErrors:     v.GetInt(flagMaxErrors),
		HumanReadable: v.GetBool(flagHumanReadableFileSize),
		NoColor:       v.GetBool(flagNoColor),
		Verbose:       v.GetBool(flagVerbose),
	}), nil
}

// runTransfer runs a transfer and returns the exit code.
func runTransfer(ctx context.Context, v *viper.Viper) (int, error) {
	debug := v.GetBool(flagDebug)

	logger, err := initLogger(v.GetString(flagLogPath), v.GetString(flagLogPerm), v.GetString(flagLogFormat))
	if err != nil {
		return transfer.ExitUnexpected, fmt.Errorf("error initializing logger: %w", err)
	}

	sink, err := initSink(v, logger)
	if err != nil {
		return transfer.ExitUnexpected, err
	}

	sourceRoot, err := localPath(v.GetString(flagSource))
	if err != nil {
		return transfer.ExitUnexpected, err
	}

	// the walk does not follow links, so a linked source root is resolved first
	if resolved, err := filepath.EvalSymlinks(sourceRoot); err == nil {
		sourceRoot = resolved
	}

	destinationURI := v.GetString(flagDestination)
	dryRun := v.GetBool(flagDryRun)

	if debug {
		_ = logger.Log("Creating destination filesystem", map[string]interface{}{
			"root":    destinationURI,
			"dry_run": dryRun,
		})
	}

	destinationFileSystem, destinationRoot, err := InitDestination(ctx, &InitDestinationInput{
		Viper:  v,
		Logger: logger,
		URI:    destinationURI,
		DryRun: dryRun,
	})
	if err != nil {
		return transfer.ExitUnexpected, fmt.Errorf("error initializing destination: %w", err)
	}

	if debug {
		_ = logger.Log("Created destination filesystem", map[string]interface{}{
			"root": destinationFileSystem.Root(),
			"path": destinationRoot,
		})
	}

	executor := &transfer.Executor{
		Source:      lfs.NewReadOnlyLocalFileSystem(),
		Destination: destinationFileSystem,
		Sink:        sink,
	}
	if debug {
		executor.Logger = logger
	}

	cfg := transfer.Config{
		Source:         sourceRoot,
		Destination:    destinationRoot,
		DestinationURI: destinationURI,
		Extensions:     transfer.ParseExtensions(v.GetString(flagFileTypes)),
		DryRun:         dryRun,
	}

	stats, err := executor.Run(ctx, cfg)

	code := transfer.ExitCode(stats, err)

	if err != nil {
		var interruptedError *transfer.InterruptedError
		if errors.As(err, &interruptedError) {
			return code, errors.New("transfer interrupted by user")
		}
		return code, err
	}

	return code, nil
}

func main() {
	rootCommand := &cobra.Command{
		Use:                   `gotransfer [flags]`,
		DisableFlagsInUseLine: true,
		Short: strings.Join([]string{
			"gotransfer is a simple command line program for mirroring a directory tree to a local directory or to S3.",
			"Files that already exist at the destination with the same size are skipped.",
			"Local files are specified using the \"file://\" scheme or a path without a scheme.",
			"S3 destinations are specified using the \"s3://\" scheme.",
		}, "\n"),
	}

	layoutsCommand := &cobra.Command{
		Use:                   `layouts`,
		DisableFlagsInUseLine: true,
		Short:                 "show supported timestamp layouts",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range ts.Names() {
				fmt.Printf("%s: %s\n", name, ts.NamedLayouts[name])
			}
			return nil
		},
	}

	transferCommand := &cobra.Command{
		Use:                   "transfer --source SOURCE --destination DESTINATION [flags]",
		DisableFlagsInUseLine: true,
		Short:                 "transfer",
		Long:                  "copy every file under the source directory that is missing at the destination or differs in size",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {

			v, err := initViper(cmd)
			if err != nil {
				return fmt.Errorf("error initializing viper: %w", err)
			}

			if errConfig := checkTransferConfig(v, args); errConfig != nil {
				return errConfig
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)

			code, err := runTransfer(ctx, v)

			stop()

			if err != nil {
				fmt.Fprintln(os.Stderr, "gotransfer: "+err.Error())
			}

			if code != transfer.ExitSuccess {
				os.Exit(code)
			}

			return nil
		},
	}
	initTransferCommandFlags(transferCommand.Flags())

	versionCommand := &cobra.Command{
		Use:                   `version`,
		DisableFlagsInUseLine: true,
		Short:                 "show version",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(GoTransferVersion)
			return nil
		},
	}

	rootCommand.AddCommand(layoutsCommand, transferCommand, versionCommand)

	if err := rootCommand.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "gotransfer: "+err.Error())
		fmt.Fprintln(os.Stderr, "Try \"gotransfer --help\" for more information.")
		os.Exit(transfer.ExitUnexpected)
	}
}
