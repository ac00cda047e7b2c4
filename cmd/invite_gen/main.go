package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"woa-fleet/hangar/internal/config"
	"woa-fleet/hangar/internal/db"
	"woa-fleet/hangar/internal/db/repositories"
	"woa-fleet/hangar/internal/logging"
	"woa-fleet/hangar/internal/models/dtos"
	"woa-fleet/hangar/internal/services"
)

// invite_gen mints invitation codes straight into the database.
func main() {
	count := flag.Int("n", 1, "number of codes to create")
	uses := flag.Int("uses", 1, "uses per code")
	code := flag.String("code", "", "fixed code (only with -n 1)")
	flag.Parse()

	if *count < 1 || (*code != "" && *count != 1) {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := logging.Init(cfg.AppEnv, "warn"); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logging.Close()

	orm, err := db.InitORM(cfg.DB)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	sqlxDB, err := db.InitSQLX(cfg.DB, orm)
	if err != nil {
		log.Fatalf("open sqlx: %v", err)
	}
	defer sqlxDB.Close()

	svc := services.NewInvitationService(repositories.NewInvitationRepo(sqlxDB))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for i := 0; i < *count; i++ {
		inv, err := svc.Create(ctx, dtos.CreateInvitationRequest{Code: *code, RemainingUses: *uses})
		if err != nil {
			log.Fatalf("create invitation: %v", err)
		}
		fmt.Printf("%s\t%d\n", inv.Code, inv.RemainingUses)
	}
}
