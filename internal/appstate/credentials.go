package appstate

// KeyCredential holds the bearer credential. Only the account flow writes it.
const KeyCredential = "token"

type Credentials struct {
	kv *KV
}

func NewCredentials(kv *KV) *Credentials {
	return &Credentials{kv: kv}
}

// Token returns the stored credential, "" when logged out.
func (c *Credentials) Token() (string, error) {
	token, _, err := c.kv.Get(KeyCredential)
	return token, err
}

func (c *Credentials) Store(token string) error {
	return c.kv.Set(KeyCredential, token)
}

func (c *Credentials) Discard() error {
	return c.kv.Delete(KeyCredential)
}
