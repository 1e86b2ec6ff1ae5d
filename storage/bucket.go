package storage

import (
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type StorageType uint8

const (
	StorageTypeFile StorageType = 0
	StorageTypeS3   StorageType = 1
)

type Bucket struct {
	ID            uint64 `gorm:"primaryKey"`
	CreatedAt     int64
	UpdatedAt     int64
	Name          string `gorm:"type:varchar(200)"` // S3 bucket name, or just a label for disk buckets
	StorageType   StorageType
	Path          string // Path on a drive or a prefix in a S3 bucket
	Region        string `gorm:"type:varchar(30)"`
	Endpoint      string `gorm:"type:varchar(300)"` // Custom S3 endpoint (minio, etc); empty for AWS
	S3Key         string `gorm:"type:varchar(200)"`
	S3Secret      string `gorm:"type:varchar(200)"`
	SSEEncryption string `gorm:"type:varchar(30)"`
}

func (b *Bucket) CreateSVC() *s3.S3 {
	awsConfig := aws.Config{
		Region:      aws.String(b.Region),
		Credentials: credentials.NewStaticCredentials(b.S3Key, b.S3Secret, ""),
	}
	if b.Endpoint != "" {
		awsConfig.Endpoint = aws.String(b.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}
	return s3.New(session.Must(session.NewSession(&awsConfig)))
}

// GetRemotePath prefixes the object key with the bucket's configured prefix
func (b *Bucket) GetRemotePath(path string) string {
	if b.Path == "" {
		return path
	}
	return strings.TrimSuffix(b.Path, "/") + "/" + path
}
