package pdfsdk

import (
	"context"
	"errors"
	"strconv"

	"github.com/imroc/req/v3"
)

const (
	pdfList   = "/pdf/list"
	pdfUpload = "/pdf/upload"
	pdfByID   = "/pdf/{id}"

	uploadField = "file"
)

var ErrNoContent = errors.New("sdk: upload has no content")

type DocumentAPI struct {
	client *req.Client
}

func newDocumentAPI(client *req.Client) *DocumentAPI {
	return &DocumentAPI{client: client}
}

func (d *DocumentAPI) List(ctx context.Context) (resp []*Document, err error) {
	res, err := d.client.R().
		SetContext(ctx).
		SetSuccessResult(&resp).
		Get(pdfList)

	if err := handleAPIError(res, err, "pdf list"); err != nil {
		return nil, err
	}

	return resp, nil
}

// Upload sends one file as multipart field "file".
func (d *DocumentAPI) Upload(ctx context.Context, params *UploadParams) (resp *Document, err error) {
	if params.Open == nil {
		return nil, ErrNoContent
	}

	contentType := params.ContentType
	if contentType == "" {
		contentType = MediaTypePDF
	}

	res, err := d.client.R().
		SetContext(ctx).
		SetFileUpload(req.FileUpload{
			ParamName:      uploadField,
			FileName:       params.Name,
			FileSize:       params.Size,
			ContentType:    contentType,
			GetFileContent: params.Open,
		}).
		SetSuccessResult(&resp).
		Post(pdfUpload)

	if err := handleAPIError(res, err, "pdf upload"); err != nil {
		return nil, err
	}

	return resp, nil
}

func (d *DocumentAPI) Get(ctx context.Context, id int64) (resp *Document, err error) {
	res, err := d.client.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetSuccessResult(&resp).
		Get(pdfByID)

	if err := handleAPIError(res, err, "pdf get"); err != nil {
		return nil, err
	}

	return resp, nil
}

func (d *DocumentAPI) Delete(ctx context.Context, id int64) error {
	res, err := d.client.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Delete(pdfByID)

	return handleAPIError(res, err, "pdf delete")
}
