package crypto

// AlgorithmSHA1 identifies the SHA-1 digest algorithm
const AlgorithmSHA1 AlgorithmIdentifier = "SHA-1"

// AlgorithmSHA256 identifies the SHA-256 digest algorithm
const AlgorithmSHA256 AlgorithmIdentifier = "SHA-256"

// AlgorithmSHA384 identifies the SHA-384 digest algorithm
const AlgorithmSHA384 AlgorithmIdentifier = "SHA-384"

// AlgorithmSHA512 identifies the SHA-512 digest algorithm
const AlgorithmSHA512 AlgorithmIdentifier = "SHA-512"

// AlgorithmRSASSAPKCS1v15 identifies RSASSA-PKCS1-v1_5 signatures
const AlgorithmRSASSAPKCS1v15 AlgorithmIdentifier = "RSASSA-PKCS1-v1_5"

// KeyFormatJWK is the JSON Web Key import format
const KeyFormatJWK KeyFormat = "jwk"

// KeyUsageVerify permits signature verification
const KeyUsageVerify KeyUsage = "verify"

// KeyUsageSign permits signature generation
const KeyUsageSign KeyUsage = "sign"

// KeyTypePublic represents a public key handle
const KeyTypePublic = "public"

// KeyTypeRSA is the JWK "kty" value for RSA keys
const KeyTypeRSA = "RSA"

// KeyUseSignature is the JWK "use" value for signing keys
const KeyUseSignature = "sig"

// MaxRandomValuesBytes is the largest buffer a single GetRandomValues call may fill
const MaxRandomValuesBytes = 65536
