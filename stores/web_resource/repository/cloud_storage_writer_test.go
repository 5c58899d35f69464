package repository

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/storage"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/xerrors"
	"google.golang.org/api/iterator"

	bCtx "github.com/x-xyz/swiftbid/base/ctx"
)

// 1x1 transparent png
var testingImage = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89,
}

type cloudStorageTestSuite struct {
	suite.Suite
	client        *storage.Client
	bucketName    string
	bucketUrl     string
	testingFolder string
}

func (suite *cloudStorageTestSuite) SetupSuite() {
	ctx := bCtx.Background()
	client, err := storage.NewClient(ctx)
	suite.Require().NoError(err)

	suite.client = client
	suite.bucketName = os.Getenv("GCS_TEST_BUCKET")
	suite.bucketUrl = fmt.Sprintf("https://%s", suite.bucketName)
	suite.testingFolder = "testing"
}

func (suite *cloudStorageTestSuite) TearDownSuite() {
	ctx := bCtx.Background()
	query := &storage.Query{Prefix: suite.testingFolder}
	bucket := suite.client.Bucket(suite.bucketName)
	it := bucket.Objects(ctx, query)
	for {
		attr, err := it.Next()
		if err == iterator.Done {
			break
		}
		suite.NoError(err)
		err = bucket.Object(attr.Name).Delete(ctx)
		suite.NoError(err)
	}
	err := suite.client.Close()
	suite.NoError(err)
}

func TestCloudStorageWriterRepo(t *testing.T) {
	if os.Getenv("GCS_TEST_BUCKET") == "" {
		t.Skip("requires google cloud storage auth and GCS_TEST_BUCKET")
	}
	suite.Run(t, new(cloudStorageTestSuite))
}

func (suite *cloudStorageTestSuite) Test_cloudStorageWriterRepo_Store() {
	req := require.New(suite.T())
	ctx := bCtx.Background()

	contentPath := fmt.Sprintf("%s/listings/pixel.png", suite.testingFolder)
	expectedUrl := fmt.Sprintf("%s/%s", suite.bucketUrl, contentPath)
	cs, err := NewCloudStorageWriterRepo(&CloudStorageWriterRepoCfg{
		Client:     suite.client,
		BucketName: suite.bucketName,
		Timeout:    10 * time.Second,
		Url:        suite.bucketUrl,
	})
	req.NoError(err)
	url, err := cs.Store(ctx, contentPath, testingImage, "image/png")
	req.NoError(err)
	req.Equal(expectedUrl, url)

	body, err := httpGet(ctx, url)
	req.NoError(err)
	req.Equal(testingImage, body)
}

func httpGet(ctx bCtx.Ctx, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, xerrors.Errorf("resp.StatusCode != 200")
	}
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return body, nil
}
