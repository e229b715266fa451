package identitybridge

const VERSION = "0.4.0"
