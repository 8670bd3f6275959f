// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyfob Contributors

// Package goplugin serves the keyring facade over hashicorp/go-plugin so a
// host application can run keyfob as a plugin subprocess and route
// credential calls across the process boundary. The net/rpc protocol is
// used; responses carry (code, message) pairs because error values do not
// keep their identity across the wire.
package goplugin

import (
	"net/rpc"
	"os/exec"

	"github.com/hashicorp/go-plugin"

	"github.com/keyfob-dev/keyfob/internal/keyring"
	"github.com/keyfob-dev/keyfob/pkg/credential"
	keyfoberr "github.com/keyfob-dev/keyfob/pkg/errors"
)

const (
	protocolVersion = 1
	magicCookieKey  = "KEYFOB_PLUGIN"
	magicCookieVal  = "a2V5Zm9iLWdvLXBsdWdpbg==" // "keyfob-go-plugin" base64
)

// PluginName is the key hosts dispense the keyring plugin under.
const PluginName = "keyring"

func HandshakeConfig() plugin.HandshakeConfig {
	return plugin.HandshakeConfig{
		ProtocolVersion:  protocolVersion,
		MagicCookieKey:   magicCookieKey,
		MagicCookieValue: magicCookieVal,
	}
}

// PluginMap returns the plugin set served to the host. impl may be nil on
// the client side.
func PluginMap(impl *keyring.Keyring) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginName: &KeyringPlugin{Impl: impl},
	}
}

// Serve blocks serving the keyring to the host process. The host calls
// InitializeService before any credential operation, same as in-process
// embedders.
func Serve(impl *keyring.Keyring) {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: HandshakeConfig(),
		Plugins:         PluginMap(impl),
	})
}

// ClientConfig builds the host-side configuration for launching a keyfob
// plugin binary.
func ClientConfig(binaryPath string) *plugin.ClientConfig {
	return &plugin.ClientConfig{
		HandshakeConfig: HandshakeConfig(),
		Plugins:         PluginMap(nil),
		Cmd:             exec.Command(binaryPath),
	}
}

// KeyringPlugin is the go-plugin glue for the keyring service.
type KeyringPlugin struct {
	Impl *keyring.Keyring
}

func (p *KeyringPlugin) Server(*plugin.MuxBroker) (any, error) {
	return &rpcServer{impl: p.Impl}, nil
}

func (p *KeyringPlugin) Client(_ *plugin.MuxBroker, c *rpc.Client) (any, error) {
	return &Client{client: c}, nil
}

// Wire types. Every response carries the error code and message so the
// client can rebuild the coded error the facade produced.

type InitializeServiceRequest struct {
	Service string
}

type CredentialRequest struct {
	Username string
	Type     string
	Value    []byte
}

type OpResponse struct {
	Code    string
	Message string
}

type GetResponse struct {
	Value   []byte
	Code    string
	Message string
}

type ExistsResponse struct {
	Present bool
	Code    string
	Message string
}

type ListResponse struct {
	Keys    []string
	Code    string
	Message string
}

func encodeError(err error) (code, message string) {
	if err == nil {
		return "", ""
	}

	c := keyfoberr.CodeOf(err)
	if c == "" {
		c = keyfoberr.CodeBackendPlatformFailure
	}
	return string(c), err.Error()
}

func decodeError(code, message string) error {
	if code == "" {
		return nil
	}
	return keyfoberr.New(keyfoberr.Code(code), message)
}

type rpcServer struct {
	impl *keyring.Keyring
}

func (s *rpcServer) parseType(raw string) (credential.Type, error) {
	return credential.ParseType(raw)
}

func (s *rpcServer) InitializeService(req InitializeServiceRequest, resp *OpResponse) error {
	resp.Code, resp.Message = encodeError(s.impl.InitializeService(req.Service))
	return nil
}

func (s *rpcServer) Set(req CredentialRequest, resp *OpResponse) error {
	ctype, err := s.parseType(req.Type)
	if err == nil {
		err = s.impl.Set(req.Username, ctype, credential.Value(req.Value))
	}
	resp.Code, resp.Message = encodeError(err)
	return nil
}

func (s *rpcServer) Get(req CredentialRequest, resp *GetResponse) error {
	ctype, err := s.parseType(req.Type)
	if err == nil {
		var value credential.Value
		value, err = s.impl.Get(req.Username, ctype)
		resp.Value = value
	}
	resp.Code, resp.Message = encodeError(err)
	return nil
}

func (s *rpcServer) Delete(req CredentialRequest, resp *OpResponse) error {
	ctype, err := s.parseType(req.Type)
	if err == nil {
		err = s.impl.Delete(req.Username, ctype)
	}
	resp.Code, resp.Message = encodeError(err)
	return nil
}

func (s *rpcServer) Exists(req CredentialRequest, resp *ExistsResponse) error {
	ctype, err := s.parseType(req.Type)
	if err == nil {
		resp.Present, err = s.impl.Exists(req.Username, ctype)
	}
	resp.Code, resp.Message = encodeError(err)
	return nil
}

func (s *rpcServer) List(_ struct{}, resp *ListResponse) error {
	keys, err := s.impl.List()
	resp.Keys = keys
	resp.Code, resp.Message = encodeError(err)
	return nil
}

// Client is the host-side keyring handle. It mirrors the facade surface,
// with wire round-trips instead of direct calls.
type Client struct {
	client *rpc.Client
}

func (c *Client) InitializeService(service string) error {
	var resp OpResponse
	if err := c.client.Call("Plugin.InitializeService", InitializeServiceRequest{Service: service}, &resp); err != nil {
		return keyfoberr.Wrap(err, keyfoberr.CodeHostBindingFailure, "keyring plugin call")
	}
	return decodeError(resp.Code, resp.Message)
}

func (c *Client) Set(username string, credentialType credential.Type, value credential.Value) error {
	var resp OpResponse
	req := CredentialRequest{Username: username, Type: string(credentialType), Value: value}
	if err := c.client.Call("Plugin.Set", req, &resp); err != nil {
		return keyfoberr.Wrap(err, keyfoberr.CodeHostBindingFailure, "keyring plugin call")
	}
	return decodeError(resp.Code, resp.Message)
}

func (c *Client) Get(username string, credentialType credential.Type) (credential.Value, error) {
	var resp GetResponse
	req := CredentialRequest{Username: username, Type: string(credentialType)}
	if err := c.client.Call("Plugin.Get", req, &resp); err != nil {
		return nil, keyfoberr.Wrap(err, keyfoberr.CodeHostBindingFailure, "keyring plugin call")
	}
	if err := decodeError(resp.Code, resp.Message); err != nil {
		return nil, err
	}
	return credential.Value(resp.Value), nil
}

func (c *Client) Delete(username string, credentialType credential.Type) error {
	var resp OpResponse
	req := CredentialRequest{Username: username, Type: string(credentialType)}
	if err := c.client.Call("Plugin.Delete", req, &resp); err != nil {
		return keyfoberr.Wrap(err, keyfoberr.CodeHostBindingFailure, "keyring plugin call")
	}
	return decodeError(resp.Code, resp.Message)
}

func (c *Client) Exists(username string, credentialType credential.Type) (bool, error) {
	var resp ExistsResponse
	req := CredentialRequest{Username: username, Type: string(credentialType)}
	if err := c.client.Call("Plugin.Exists", req, &resp); err != nil {
		return false, keyfoberr.Wrap(err, keyfoberr.CodeHostBindingFailure, "keyring plugin call")
	}
	if err := decodeError(resp.Code, resp.Message); err != nil {
		return false, err
	}
	return resp.Present, nil
}

func (c *Client) List() ([]string, error) {
	var resp ListResponse
	if err := c.client.Call("Plugin.List", struct{}{}, &resp); err != nil {
		return nil, keyfoberr.Wrap(err, keyfoberr.CodeHostBindingFailure, "keyring plugin call")
	}
	if err := decodeError(resp.Code, resp.Message); err != nil {
		return nil, err
	}
	return resp.Keys, nil
}
