package main

import "embed"

//go:embed seeds/*
var seedFiles embed.FS
