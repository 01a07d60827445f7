package constants

const (
	AppName = "typed-data-signer"

	// Wire method names, one per typed-data signing convention.
	WireSignTypedDataV1 = "eth_signTypedData"
	WireSignTypedDataV3 = "eth_signTypedData_v3"
	WireSignTypedDataV4 = "eth_signTypedData_v4"

	WireAccounts = "eth_accounts"
	WireChainID  = "eth_chainId"

	JSONIndent    = "  "
	JSONExtension = ".json"
	FilePerm      = 0o600

	// Rolling outcome log size.
	LogCapacity = 100

	DefaultRequestTimeoutSeconds = 120
)

// Fixed outcome texts. Failures otherwise carry the wallet's error text verbatim.
const (
	ShapeErrorText          = "missing or invalid: domain/types/primaryType/message"
	WalletNotConnectedText  = "wallet not connected"
	InvalidJSONShapeText    = "invalid JSON shape"
	NoPrimarySignerText     = "no wallet signer available"
	NoRPCTransportText      = "no wallet RPC transport available"
	SigningStartedText      = "signing started"
	SigningSucceededText    = "signature created"
	NotControlledByWallet   = "address not controlled by this wallet"
	MalformedSignatureText  = "malformed signature"
	InvalidAddressFormatStr = "Invalid address %q"
)
