package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/osetrov/healthkeeper/internal/common"
)

func (a *App) register(ctx context.Context) {

	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.SignUp(ctx, email, string(password))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("Account created for %s. Use 'login' to sign in.\n", user.Email)
}

func (a *App) login(ctx context.Context) {

	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.SignIn(ctx, email, string(password))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("Signed in as %s\n", user.Email)
}

func (a *App) logout(ctx context.Context) {
	if err := a.auth.SignOut(ctx); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Signed out")
}
