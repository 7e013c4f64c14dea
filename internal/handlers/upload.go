package handlers

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"

	appconfig "github.com/Karann2002/SnapLink-backend/internal/config"
	"github.com/Karann2002/SnapLink-backend/pkg/utils"
)

func getS3Client() (*s3.Client, error) {
	cfg := appconfig.AppConfig
	r2Resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID),
		}, nil
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithEndpointResolverWithOptions(r2Resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, "")),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg), nil
}

// uploadToStorage streams one multipart file into the bucket and
// returns its public URL.
func uploadToStorage(ctx context.Context, file multipart.File, header *multipart.FileHeader, folder string) (string, error) {
	client, err := getS3Client()
	if err != nil {
		return "", err
	}

	cfg := appconfig.AppConfig
	key := fmt.Sprintf("%s/%s%s", folder, utils.GenerateID(), filepath.Ext(header.Filename))

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(cfg.R2BucketName),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(header.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", err
	}

	publicURL := cfg.R2PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.r2.dev", cfg.R2BucketName)
	}
	return fmt.Sprintf("%s/%s", publicURL, key), nil
}

// UploadFile POST /api/upload, standalone media upload. Returns the
// stored object's URL for the client to attach elsewhere.
func UploadFile(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid file field found"})
		return
	}
	defer file.Close()

	url, err := uploadToStorage(c.Request.Context(), file, header, c.DefaultQuery("folder", "snaplink/uploads"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":      url,
		"mimetype": header.Header.Get("Content-Type"),
		"size":     header.Size,
	})
}
