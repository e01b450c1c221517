// Copyright (c) 2026 Veilpoll Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

CLI flags take precedence over environment variables; a local .env file is
loaded when present.

# Settings

  - PORT (-p): server port (default 3318)
  - DATABASE_URL (-d): journal database URL (default file:veilpoll.db)
  - DATABASE_TYPE (-t): sqlite or postgres (default sqlite)
  - IDENTITY_SALT (--identity-salt): secret for identity token HMAC (required)
  - KAFKA_BROKERS (--kafka-brokers): comma-separated brokers; empty disables
    Kafka publishing
  - KAFKA_TOPIC (--kafka-topic): event topic (default veilpoll.events)
*/
package cliparse
