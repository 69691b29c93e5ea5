package storage

import (
	"context"
	"fmt"
	"log"
	"tawjih-service/internal/app/config"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

func NewMinio(driverConfig *config.DriverConfig) *minio.Client {
	endPoint := fmt.Sprintf("%s:%s", driverConfig.Minio.Host, driverConfig.Minio.Port)
	minioClient, err := minio.New(endPoint, &minio.Options{
		Creds:  credentials.NewStaticV4(driverConfig.Minio.Username, driverConfig.Minio.Password, ""),
		Secure: driverConfig.Minio.UseSSL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize Minio Client: %s", err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := minioClient.BucketExists(ctx, driverConfig.Minio.BucketName)
	if err != nil {
		log.Fatalf("Failed to check minio bucket %s: %s", driverConfig.Minio.BucketName, err.Error())
	}
	if !exists {
		log.Fatalf("Minio bucket %s does not exist", driverConfig.Minio.BucketName)
	}

	log.Println("Successfully connected to minio")
	return minioClient
}
