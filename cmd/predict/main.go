// Command predict trains a linear regression model on engineered bar
// features and reports its out-of-sample performance.
package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/quantlab-oss/tradekit/internal/datasource"
	"github.com/quantlab-oss/tradekit/internal/features"
	"github.com/quantlab-oss/tradekit/internal/logger"
	"github.com/quantlab-oss/tradekit/internal/regression"
	"github.com/quantlab-oss/tradekit/internal/version"
	"github.com/quantlab-oss/tradekit/pkg/errors"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func newCommandLogger(cmd *cli.Command) (*logger.Logger, error) {
	if cmd.Bool("verbose") {
		return logger.NewVerboseLogger()
	}

	return logger.NewLogger()
}

func predictAction(ctx context.Context, cmd *cli.Command) error {
	logg, err := newCommandLogger(cmd)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logg.Sync()

	dataPath := cmd.String("data")
	horizon := int(cmd.Int("horizon"))
	trainRatio := cmd.Float("train-ratio")

	if trainRatio <= 0 || trainRatio >= 1 {
		return errors.Newf(errors.ErrCodeInvalidParameter, "train-ratio must be in (0, 1), got %v", trainRatio)
	}

	source := datasource.NewCSVSource(dataPath, logg)
	defer source.Close()

	bars, err := source.Load(ctx)
	if err != nil {
		return err
	}

	if len(bars) == 0 {
		return errors.Newf(errors.ErrCodeDataNotFound, "no bars loaded from %s", dataPath)
	}

	logg.Info("Loaded bars",
		zap.Int("bars", len(bars)),
		zap.String("from", bars[0].Date),
		zap.String("to", bars[len(bars)-1].Date),
	)

	engineer := features.NewEngineer(features.DefaultConfig())

	featureRows, targets := engineer.CreateFeatures(bars, horizon)
	if len(featureRows) == 0 {
		return errors.Newf(errors.ErrCodeDataNotFound, "not enough data to create features from %s", dataPath)
	}

	logg.Info("Engineered features",
		zap.Int("samples", len(featureRows)),
		zap.Int("features_per_sample", engineer.FeatureCount()),
		zap.Strings("features", engineer.FeatureNames()),
		zap.Any("indicators", engineer.IndicatorKinds()),
	)

	trainX, trainY, testX, testY := features.TrainTestSplit(featureRows, targets, trainRatio)

	logg.Info("Split data",
		zap.Int("training_samples", len(trainX)),
		zap.Int("test_samples", len(testX)),
	)

	model := regression.NewLinearRegression()
	if err := model.Train(trainX, trainY); err != nil {
		return err
	}

	coeffs := model.Coefficients()
	logg.Info("Model trained", zap.Float64("intercept", coeffs[0]))

	trainMSE, err := model.Evaluate(trainX, trainY)
	if err != nil {
		return err
	}

	trainR2, err := model.RSquared(trainX, trainY)
	if err != nil {
		return err
	}

	logg.Info("Training set performance",
		zap.Float64("mse", trainMSE),
		zap.Float64("rmse", math.Sqrt(trainMSE)),
		zap.Float64("r_squared", trainR2),
	)

	if len(testX) == 0 {
		logg.Warn("Test set is empty, skipping out-of-sample evaluation")

		return nil
	}

	testMSE, err := model.Evaluate(testX, testY)
	if err != nil {
		return err
	}

	testR2, err := model.RSquared(testX, testY)
	if err != nil {
		return err
	}

	logg.Info("Test set performance",
		zap.Float64("mse", testMSE),
		zap.Float64("rmse", math.Sqrt(testMSE)),
		zap.Float64("r_squared", testR2),
	)

	latest, err := model.Predict(testX[len(testX)-1])
	if err != nil {
		return err
	}

	latestActual := testY[len(testY)-1]

	logg.Info("Latest prediction",
		zap.Float64("actual", latestActual),
		zap.Float64("predicted", latest),
		zap.Float64("error_pct", (latest-latestActual)/latestActual*100),
	)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:    "predict",
		Usage:   "Train a linear price model on daily bars and evaluate it",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "data",
				Aliases:  []string{"d"},
				Usage:    "Path to the OHLCV CSV file",
				Required: true,
			},
			&cli.IntFlag{
				Name:    "horizon",
				Aliases: []string{"n"},
				Usage:   "How many days ahead to predict",
				Value:   1,
			},
			&cli.FloatFlag{
				Name:    "train-ratio",
				Aliases: []string{"r"},
				Usage:   "Fraction of samples used for training",
				Value:   0.8,
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Action: predictAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
