package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var CommitHash = ""

const environmentPrefix = "CADENCE_"
const logLevelEnvKey = environmentPrefix + "LOG_LEVEL"

var parentLogger *zap.Logger

func createLog() *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = ""

	logLevelValue := os.Getenv(logLevelEnvKey)
	logLevel, logLevelErr := zapcore.ParseLevel(logLevelValue)

	if logLevelErr != nil {
		logLevel = zapcore.InfoLevel
	}

	rawLog := zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stderr),
		logLevel,
	)).Named("cadence")

	if CommitHash != "" {
		rawLog = rawLog.With(zap.String("commit", CommitHash))
	}

	if logLevelErr != nil && logLevelValue != "" {
		rawLog.With(zap.String(logLevelEnvKey, logLevelValue)).Warn("unable to parse log level, using INFO")
	}

	return rawLog
}

var rootCmd = &cobra.Command{
	Use:   "cadence",
	Short: "Annotate speech-recognition output with rhymes, slang, and phrase timing",
	Long: `Cadence turns the flat timestamped word list produced by a speech
engine into a semantically annotated transcript: rhyme groups, slang
flags, and phrase/verse segmentation merged into one span-indexed
document.`,
	SilenceUsage: true,
}

func main() {
	parentLogger = createLog()
	defer parentLogger.Sync()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
