package inter

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"github.com/boletohub/interboleto/pkg/config"
)

// CarregaCertificado carrega o par certificado/chave (.crt/.key) emitido no
// internet banking PJ. A API exige mTLS em toda requisição.
func CarregaCertificado(certPath, keyPath string) (tls.Certificate, error) {
	cert, err := tls.LoadX509KeyPair(certPath, keyPath)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("carregar certificado do Inter: %w", err)
	}
	return cert, nil
}

// novoHTTPClient monta o http.Client com o certificado de cliente e o
// timeout configurado (INTER_HTTP_TIMEOUT; o padrão de 60 s é generoso
// porque a emissão registra o título na CIP e pode demorar alguns segundos).
func novoHTTPClient(cert tls.Certificate, timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout * time.Second
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				Certificates: []tls.Certificate{cert},
				MinVersion:   tls.VersionTLS12,
			},
		},
	}
}
