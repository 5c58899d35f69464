package repository

import (
	"bytes"
	"net/url"
	"path"

	ipfsapi "github.com/ipfs/go-ipfs-api"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/base/log"
	"github.com/x-xyz/swiftbid/domain"
)

type ipfsWriterRepo struct {
	shell   *ipfsapi.Shell
	gateway *url.URL
}

// NewIpfsWriterRepo adds and pins content on an ipfs node and serves it
// through gatewayUrl
func NewIpfsWriterRepo(s *ipfsapi.Shell, gatewayUrl string) (domain.WebResourceWriterRepository, error) {
	gateway, err := url.Parse(gatewayUrl)
	if err != nil {
		return nil, err
	}
	return &ipfsWriterRepo{shell: s, gateway: gateway}, nil
}

// Store ignores path and contentType, ipfs content is addressed by its hash
func (r *ipfsWriterRepo) Store(c ctx.Ctx, _ string, body []byte, _ string) (string, error) {
	cid, err := r.shell.Add(bytes.NewReader(body), ipfsapi.Pin(true))
	if err != nil {
		c.WithField("err", err).Error("shell.Add failed")
		return "", err
	}
	u := *r.gateway
	u.Path = path.Join(u.Path, "ipfs", cid)
	return u.String(), nil
}
