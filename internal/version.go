package internal

// Version is the palavra release version.
const Version = "0.3.1"
