package sweep

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/rotblauer/vert/params"
)

// ExportSummaries posts one point per interval and variant to an
// InfluxDB Write API. The Write API will buffer and flush.
// The last error encountered is returned.
func ExportSummaries(summaries []IntervalSummary) error {
	opts := influxdb2.DefaultOptions()
	opts.SetPrecision(time.Second)
	client := influxdb2.NewClientWithOptions(params.INFLUXDB_URL, params.INFLUXDB_TOKEN, opts)
	writeAPI := client.WriteAPI(params.INFLUXDB_ORG, params.INFLUXDB_BUCKET)

	// Errors returns a channel for reading errors which occurs during async writes.
	// Must be called before performing any writes for errors to be collected.
	// The chan is unbuffered and must be drained or the writer will block.
	// https://github.com/influxdata/influxdb-client-go?tab=readme-ov-file#reading-async-errors
	errorsCh := writeAPI.Errors()
	var err error
	wait := sync.WaitGroup{}
	wait.Add(1)
	go func() {
		defer wait.Done()
		for e := range errorsCh {
			if e != nil {
				err = e
			}
		}
	}()

	now := time.Now()
	for _, s := range summaries {
		for _, v := range []IntervalVariant{s.Baseline, s.Quality, s.Combined} {
			p := influxdb2.NewPointWithMeasurement("sweep").
				SetTime(now).
				AddTag("interval", s.Key).
				AddTag("variant", v.Name).
				AddField("score", v.WeightedScore).
				AddField("band_tight", v.Bands.Tight).
				AddField("band_mid", v.Bands.Mid).
				AddField("band_wide", v.Bands.Wide).
				AddField("band_outside", v.Bands.Outside).
				AddField("median", v.Median).
				AddField("worst", v.Worst)
			writeAPI.WritePoint(p)
		}
	}

	writeAPI.Flush()
	client.Close()
	wait.Wait()
	return err
}

// UploadReportS3 puts a rendered report under the configured bucket.
// The AWS library uses environment variables to configure itself.
func UploadReportS3(key string, body []byte) error {
	sess := session.Must(session.NewSession())
	svc := s3.New(sess)

	ctx := context.Background()
	var cancelFn func()
	timeout := time.Second * 10
	if timeout > 0 {
		ctx, cancelFn = context.WithTimeout(ctx, timeout)
	}
	defer cancelFn()

	_, err := svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(params.AWS_BUCKETNAME),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String("text/csv"),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == request.CanceledErrorCode {
			// If the SDK can determine the request or retry delay was canceled
			// by a context the CanceledErrorCode error code will be returned.
			slog.Error("AWS S3 upload canceled due to timeout", "error", err)
		} else {
			slog.Error("Failed to upload report", "error", err)
		}
		return err
	}

	slog.Info("Uploaded report to AWS S3", "bucket", params.AWS_BUCKETNAME, "key", key)
	return nil
}
