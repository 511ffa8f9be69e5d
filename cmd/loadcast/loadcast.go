package loadcast

const Version = "v0.1.0"
