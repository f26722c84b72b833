package esplora

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

func (e *esplora) BroadcastTransaction(
	ctx context.Context, txHex string,
) (string, error) {
	headers := map[string]string{
		"Content-Type": "text/plain",
	}

	status, resp, err := e.request(
		ctx, "tx", http.MethodPost, "/tx", txHex, headers,
	)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", responseError(status, resp)
	}

	txid := strings.TrimSpace(resp)
	if len(txid) != 64 {
		return "", fmt.Errorf("unexpected broadcast response: %s", txid)
	}
	return txid, nil
}
